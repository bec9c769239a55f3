package telegram

import (
	"fmt"
	"strings"

	"apechain-buybot/internal/types"
	"apechain-buybot/internal/watcher"
	"apechain-buybot/lib/translation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// NewBot creates new telegram bot
func NewBot(c BotConfig) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:    bot,
		Config: c,
	}, nil
}

// SetFlow attaches the conversational flow. The bot is constructed
// before the watcher manager (which needs it as dispatcher), so the
// flow arrives after both exist.
func (b *Bot) SetFlow(flow *Flow) {
	b.flow = flow
}

// GetUpdatesChannel gets new updates
func (b *Bot) GetUpdatesChannel() (tgbotapi.UpdatesChannel, error) {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig), nil
}

// SendMessage sends a plain HTML-mode telegram message
func (b *Bot) SendMessage(m Message) error {
	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message to chat %d", m.ChatID)
}

// Dispatch implements watcher.Dispatcher: it delivers a buy alert as
// text, photo or video depending on the notification's media kind.
func (b *Bot) Dispatch(n watcher.Notification) error {
	switch n.MediaKind {
	case types.MediaPhoto:
		photo := tgbotapi.NewPhoto(n.ChatID, tgbotapi.FileID(n.MediaRef))
		photo.Caption = n.Text
		photo.ParseMode = tgbotapi.ModeHTML
		_, err := b.Bot.Send(photo)
		return errors.Wrap(err, "could not send photo alert")
	case types.MediaVideo:
		video := tgbotapi.NewVideo(n.ChatID, tgbotapi.FileID(n.MediaRef))
		video.Caption = n.Text
		video.ParseMode = tgbotapi.ModeHTML
		_, err := b.Bot.Send(video)
		return errors.Wrap(err, "could not send video alert")
	default:
		return b.SendMessage(Message{ChatID: n.ChatID, Text: n.Text})
	}
}

// HandleUpdate processes a Telegram update and returns the reply text.
func (b *Bot) HandleUpdate(u tgbotapi.Update) string {
	msg := u.Message
	userID := msg.From.ID
	chatID := msg.Chat.ID

	// Photos and videos uploaded mid-draft become the alert media.
	if !msg.IsCommand() {
		if len(msg.Photo) > 0 {
			reply, err := b.flow.AttachMedia(userID, types.MediaPhoto, msg.Photo[len(msg.Photo)-1].FileID)
			if err != nil {
				log.Debugf("media upload ignored: %v", err)
			}
			return reply
		}
		if msg.Video != nil {
			reply, err := b.flow.AttachMedia(userID, types.MediaVideo, msg.Video.FileID)
			if err != nil {
				log.Debugf("media upload ignored: %v", err)
			}
			return reply
		}
		return ""
	}

	log.Debugf("received command: %s", msg.Command())

	switch msg.Command() {
	case "start":
		return fmt.Sprintf(translation.Translate("Welcome %s! 🎉 Use /add followed by a token address to set up buy alerts."), msg.From.UserName)
	case "help":
		return translation.Translate(helpText)
	case "add":
		reply, err := b.flow.BeginDraft(userID, chatID, strings.TrimSpace(msg.CommandArguments()))
		if err != nil {
			log.Debug(err)
		}
		return reply
	case "set":
		field, value := splitFieldArgs(msg.CommandArguments())
		reply, err := b.flow.ApplyField(userID, field, value)
		if err != nil {
			log.Debug(err)
		}
		return reply
	case "confirm":
		reply, err := b.flow.Confirm(userID)
		if err != nil {
			log.Error(err)
		}
		return reply
	case "delete":
		reply, _ := b.flow.Remove(userID, strings.TrimSpace(msg.CommandArguments()))
		return reply
	case "list":
		return b.flow.List(userID)
	}

	return translation.Translate(helpText)
}

const helpText = `Buy-alert bot commands:
/add 0x... - start configuring alerts for a token
/set field value - adjust a draft field
/confirm - save the draft and start watching
/delete 0x... - stop watching a token
/list - show your watched tokens`

func splitFieldArgs(args string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
