package webserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/substytucje-pro/offers-backend/src/offersd/data"
	"github.com/substytucje-pro/offers-backend/src/offersd/offers"
	"github.com/substytucje-pro/offers-backend/src/offersd/parser"
	"github.com/substytucje-pro/offers-backend/src/offersd/types"
)

type Offers struct {
	svc *offers.Service
	ai  parser.Client
	rdb *redis.Client
}

func NewOffers(svc *offers.Service, ai parser.Client, rdb *redis.Client) Offers {
	return Offers{svc: svc, ai: ai, rdb: rdb}
}

type paginated struct {
	Data   []types.Offer `json:"data"`
	Count  int64         `json:"count"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

// List is the public search over ACTIVE, still-live offers.
func (h Offers) List(c *gin.Context) {
	spec, sort, order, offset, limit, ok := h.parseListQuery(c, false)
	if !ok {
		return
	}

	rows, count, err := h.svc.ListPublic(c.Request.Context(), spec, sort, order, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated{Data: rows, Count: count, Offset: offset, Limit: limit})
}

// ListRaw is the moderation listing with arbitrary status filtering.
func (h Offers) ListRaw(c *gin.Context) {
	spec, sort, order, offset, limit, ok := h.parseListQuery(c, true)
	if !ok {
		return
	}

	rows, count, err := h.svc.List(c.Request.Context(), spec, sort, order, offset, limit, offers.LoadAll)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated{Data: rows, Count: count, Offset: offset, Limit: limit})
}

func (h Offers) parseListQuery(c *gin.Context, allowStatus bool) (offers.FilterSpec, offers.SortKey, offers.SortOrder, int, int, bool) {
	var spec offers.FilterSpec

	fail := func(msg string) (offers.FilterSpec, offers.SortKey, offers.SortOrder, int, int, bool) {
		c.JSON(http.StatusBadRequest, gin.H{"err": msg})
		return spec, "", "", 0, 0, false
	}

	if search := c.Query("search"); search != "" {
		if len(search) > 50 {
			return fail("search too long")
		}
		spec.Search = search
	}

	if allowStatus {
		if raw := c.Query("status"); raw != "" {
			status, err := types.ParseStatus(raw)
			if err != nil {
				return fail(err.Error())
			}
			spec.Status = &status
		}
	}

	if raw := c.Query("invoice"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fail("invalid invoice flag")
		}
		spec.Invoice = &v
	}

	if raw := c.Query("roles"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return fail("invalid role uuid: " + part)
			}
			spec.RoleUUIDs = append(spec.RoleUUIDs, id)
		}
	}

	lat, latOK, err := floatQuery(c, "lat")
	if err != nil {
		return fail("invalid lat")
	}
	lon, lonOK, err := floatQuery(c, "lon")
	if err != nil {
		return fail("invalid lon")
	}
	radius, radOK, err := floatQuery(c, "distance_km")
	if err != nil {
		return fail("invalid distance_km")
	}
	if latOK != lonOK || lonOK != radOK {
		return fail("lat, lon and distance_km must be supplied together")
	}
	if latOK {
		spec.Lat, spec.Lon, spec.RadiusKM = &lat, &lon, &radius
	}

	sort, err := offers.ParseSortKey(c.DefaultQuery("field", "created_at"))
	if err != nil {
		return fail(err.Error())
	}
	order, err := offers.ParseSortOrder(c.DefaultQuery("order", "desc"))
	if err != nil {
		return fail(err.Error())
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return fail("invalid offset")
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		return fail("invalid limit")
	}

	return spec, sort, order, offset, limit, true
}

func floatQuery(c *gin.Context, key string) (float64, bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, true, err
}

func (h Offers) Count(c *gin.Context) {
	n, err := data.CachedActiveCount(c.Request.Context(), h.rdb, h.svc.CountActive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h Offers) CreateRaw(c *gin.Context) {
	var req struct {
		RawData   string `json:"raw_data" binding:"required"`
		Author    string `json:"author" binding:"required,max=96"`
		AuthorUID string `json:"author_uid"`
		OfferUID  string `json:"offer_uid" binding:"required"`
		Timestamp string `json:"timestamp"`
		Source    string `json:"source" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	source, err := types.ParseSource(req.Source)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var ts time.Time
	if req.Timestamp != "" {
		ts, err = time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"err": "invalid timestamp"})
			return
		}
	}

	_, err = h.svc.CreateRaw(c.Request.Context(), offers.RawOffer{
		Author:    req.Author,
		AuthorUID: req.AuthorUID,
		OfferUID:  req.OfferUID,
		RawData:   req.RawData,
		Timestamp: ts,
		Source:    source,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h Offers) ImportBatch(c *gin.Context) {
	var req []struct {
		RawData   string `json:"raw_data"`
		Author    string `json:"author"`
		AuthorUID string `json:"author_uid"`
		OfferUID  string `json:"offer_uid"`
		Timestamp string `json:"timestamp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	items := make([]offers.RawOffer, 0, len(req))
	for _, item := range req {
		var ts time.Time
		if item.Timestamp != "" {
			ts, _ = time.Parse(time.RFC3339, item.Timestamp)
		}
		items = append(items, offers.RawOffer{
			Author:    item.Author,
			AuthorUID: item.AuthorUID,
			OfferUID:  item.OfferUID,
			RawData:   item.RawData,
			Timestamp: ts,
			Source:    types.SourceBot,
		})
	}

	summary := h.svc.ImportBatch(c.Request.Context(), items)
	c.JSON(http.StatusOK, summary)
}

func (h Offers) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	offer, err := h.svc.Get(c.Request.Context(), id, offers.LoadAll)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h Offers) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	var req struct {
		Price       *float64     `json:"price"`
		Description *string      `json:"description"`
		Email       *string      `json:"email"`
		URL         *string      `json:"url"`
		Invoice     *bool        `json:"invoice"`
		Visible     *bool        `json:"visible"`
		Status      *string      `json:"status"`
		Author      *string      `json:"author"`
		PlaceName   *string      `json:"place_name"`
		CityName    *string      `json:"city_name"`
		Date        *string      `json:"date"`
		Hour        *string      `json:"hour"`
		RoleUUIDs   *[]uuid.UUID `json:"legal_role_uuids"`
		PlaceUUID   *uuid.UUID   `json:"place_uuid"`
		CityUUID    *uuid.UUID   `json:"city_uuid"`
		SubmitEmail bool         `json:"submit_email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	patch := offers.OfferPatch{
		Scalars: offers.ScalarPatch{
			Price:       req.Price,
			Description: req.Description,
			Email:       req.Email,
			URL:         req.URL,
			Invoice:     req.Invoice,
			Visible:     req.Visible,
			Author:      req.Author,
			PlaceName:   req.PlaceName,
			CityName:    req.CityName,
			Date:        req.Date,
			Hour:        req.Hour,
		},
		RoleUUIDs:   req.RoleUUIDs,
		PlaceUUID:   req.PlaceUUID,
		CityUUID:    req.CityUUID,
		SubmitEmail: req.SubmitEmail,
	}
	if req.Status != nil {
		status, err := types.ParseStatus(*req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
			return
		}
		patch.Scalars.Status = &status
	}

	if err := h.svc.Update(c.Request.Context(), id, patch); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Offers) Accept(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.svc.Accept(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Offers) Reject(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.svc.Reject(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Parse runs the AI extraction on demand. A collaborator failure is a
// structured success=false payload, not an HTTP error.
func (h Offers) Parse(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	offer, err := h.svc.Get(c.Request.Context(), id, offers.LoadFlags{})
	if err != nil {
		respondError(c, err)
		return
	}
	if offer.RawData == nil || *offer.RawData == "" {
		c.JSON(http.StatusOK, parser.ParseResult{Success: false, Error: "offer has no raw data"})
		return
	}

	c.JSON(http.StatusOK, h.ai.ParseOffer(c.Request.Context(), *offer.RawData))
}

func (h Offers) Similar(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	rows, err := h.svc.Similar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func pathUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid uuid"})
		return uuid.Nil, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	var notFound *offers.NotFoundError
	var conflict *offers.ConflictError
	var validation *offers.ValidationError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"err": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"err": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
	}
}
