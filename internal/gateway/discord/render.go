package discord

import (
	"strings"

	"github.com/KirkDiggler/scoutmaster/internal/models"
	"github.com/bwmarrin/discordgo"
)

// Button actions carried in component custom IDs as "<action>:<session id>"
const (
	ActionJoin     = "recruit_join"
	ActionWithdraw = "recruit_withdraw"
	ActionCancel   = "recruit_cancel"
)

// CustomID builds the component ID for a session button
func CustomID(action, sessionID string) string {
	return action + ":" + sessionID
}

// ParseCustomID splits a component ID built by CustomID
func ParseCustomID(customID string) (action, sessionID string, ok bool) {
	action, sessionID, ok = strings.Cut(customID, ":")
	if !ok || sessionID == "" {
		return "", "", false
	}

	switch action {
	case ActionJoin, ActionWithdraw, ActionCancel:
		return action, sessionID, true
	}

	return "", "", false
}

// renderEmbeds converts the neutral embed into discord embeds
func renderEmbeds(msg *models.Message) []*discordgo.MessageEmbed {
	if msg.Embed == nil {
		return []*discordgo.MessageEmbed{}
	}

	embed := &discordgo.MessageEmbed{
		Title:       msg.Embed.Title,
		Description: msg.Embed.Description,
		Color:       msg.Embed.Color,
	}
	if msg.Embed.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: msg.Embed.ImageURL}
	}

	return []*discordgo.MessageEmbed{embed}
}

// renderComponents attaches the session controls a message kind carries
func renderComponents(msg *models.Message) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent

	switch msg.Kind {
	case models.MessageKindListing:
		buttons = []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Join",
				Style:    discordgo.SuccessButton,
				CustomID: CustomID(ActionJoin, msg.SessionID),
			},
			discordgo.Button{
				Label:    "Withdraw",
				Style:    discordgo.DangerButton,
				CustomID: CustomID(ActionWithdraw, msg.SessionID),
			},
		}
	case models.MessageKindControlPanel:
		buttons = []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Cancel Session",
				Style:    discordgo.DangerButton,
				CustomID: CustomID(ActionCancel, msg.SessionID),
			},
		}
	}

	if len(buttons) == 0 || msg.SessionID == "" {
		return []discordgo.MessageComponent{}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

// renderAllowedMentions only lets @everyone through when the message asks for it
func renderAllowedMentions(msg *models.Message) *discordgo.MessageAllowedMentions {
	parse := []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers}
	if msg.MentionEveryone {
		parse = append(parse, discordgo.AllowedMentionTypeEveryone)
	}

	return &discordgo.MessageAllowedMentions{Parse: parse}
}

func renderSend(msg *models.Message) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:         msg.Content,
		Embeds:          renderEmbeds(msg),
		Components:      renderComponents(msg),
		AllowedMentions: renderAllowedMentions(msg),
	}
}

func renderEdit(channelID, messageID string, msg *models.Message) *discordgo.MessageEdit {
	content := msg.Content
	embeds := renderEmbeds(msg)
	components := renderComponents(msg)

	return &discordgo.MessageEdit{
		ID:              messageID,
		Channel:         channelID,
		Content:         &content,
		Embeds:          &embeds,
		Components:      &components,
		AllowedMentions: renderAllowedMentions(msg),
	}
}
