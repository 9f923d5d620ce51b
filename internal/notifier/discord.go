package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/seatserve/seatserve-api/internal/models"
)

type Notifier interface {
	NotifyBooking(user models.User, event models.Event, booking models.Booking) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyBooking(user models.User, event models.Event, booking models.Booking) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	message := fmt.Sprintf("🎟️ **New Booking**\n**Event:** %s\n**Participant:** %s\n**Code:** %s\n**Event Dates:** %s - %s",
		event.Title,
		user.Username,
		booking.BookingCode,
		event.StartDate.Format("2006-01-02"),
		event.EndDate.Format("2006-01-02"),
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
