package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Discord posts moderator alerts to a fixed channel.
type Discord struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscord(token, channelID string) (*Discord, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("discord open: %w", err)
	}
	return &Discord{session: s, channelID: channelID}, nil
}

func (d *Discord) SendMessage(text string) error {
	_, err := d.session.ChannelMessageSend(d.channelID, text)
	return err
}

func (d *Discord) SendRichMessage(title, body string, fields map[string]string) error {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: body,
	}
	for name, value := range fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  value,
			Inline: true,
		})
	}
	_, err := d.session.ChannelMessageSendEmbed(d.channelID, embed)
	return err
}

func (d *Discord) Close() error {
	return d.session.Close()
}
