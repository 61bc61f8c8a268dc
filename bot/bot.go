/* bot.go
 * Contains logic used for creating and running the bot. Requires a discord bot
 * token and APIPtr, both of which are passed in from main.go
 */

package bot

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"scorix-ops/api/api"
)

type Bot struct {
	BotToken string
	APIPtr   *api.API
	Log      *logrus.Logger
}

func NewBot(botToken string, apiPtr *api.API, log *logrus.Logger) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if log == nil {
		log = logrus.New()
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		Log:      log,
	}, nil
}

func (b *Bot) Run() error {
	// create a session
	discord, err := discordgo.New("Bot " + b.BotToken)
	if err != nil {
		return err
	}

	// add an event handler
	discord.AddHandler(b.newMessage)

	// open session
	discord.Open()
	defer discord.Close() // close session, after function termination

	// keep bot running until there is an os interruption (ctrl + C)
	b.Log.Info("Bot running....")
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	return nil
}

// newMessage adapts the discordgo callback signature onto the testable
// handler, which only depends on the DiscordSession interface
func (b *Bot) newMessage(discord *discordgo.Session, message *discordgo.MessageCreate) {
	b.newMessageHandler(discord, message, discord.State.User.ID)
}

func (b *Bot) log(err error) {
	b.Log.WithError(err).Error("bot command failed")
}
