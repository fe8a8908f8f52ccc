package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"challenge-tracker/services"

	"github.com/bwmarrin/discordgo"
)

// Bot is the chat front-end: it maps text commands to the core operations and
// delivers streak reminders. The core knows nothing about chat syntax.
type Bot struct {
	cfg         Config
	session     *discordgo.Session
	submissions *services.SubmissionService
	reports     *services.ReportService
}

func New(cfg Config, submissions *services.SubmissionService, reports *services.ReportService) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("bot token is empty")
	}

	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	b := &Bot{
		cfg:         cfg,
		session:     dg,
		submissions: submissions,
		reports:     reports,
	}

	dg.AddHandler(b.onMessageCreate)
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	return b, nil
}

func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord connection: %w", err)
	}
	log.Printf("✅ %s is online", b.session.State.User.Username)
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// SendReminder pings a participant in the reminder channel. Duplicate
// delivery on repeated scheduler runs is accepted here.
func (b *Bot) SendReminder(ctx context.Context, participantID string) error {
	msg := fmt.Sprintf("<@%s> don't forget to submit today's progress — your streak is on the line!", participantID)
	_, err := b.session.ChannelMessageSend(b.cfg.ReminderChannelID, msg)
	return err
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, b.cfg.Prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, b.cfg.Prefix))
	if len(fields) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var reply string
	switch fields[0] {
	case "submit":
		reply = b.handleSubmit(ctx, m, fields[1:], false)
	case "resubmit":
		reply = b.handleSubmit(ctx, m, fields[1:], true)
	case "streak":
		reply = b.handleStreak(ctx, m)
	case "report":
		reply = b.handleReport(ctx)
	default:
		return
	}

	if _, err := s.ChannelMessageSendReply(m.ChannelID, reply, m.Reference()); err != nil {
		log.Printf("[Bot] failed to reply in %s: %v", m.ChannelID, err)
	}
}

func (b *Bot) handleSubmit(ctx context.Context, m *discordgo.MessageCreate, args []string, correction bool) string {
	if len(args) != 1 {
		return "Usage: submit <link to your progress post>"
	}

	displayName := m.Author.Username
	if m.Member != nil && m.Member.Nick != "" {
		displayName = m.Member.Nick
	}

	submit := b.submissions.Submit
	if correction {
		submit = b.submissions.Resubmit
	}

	record, err := submit(ctx, m.Author.ID, displayName, args[0], time.Now())
	switch {
	case err == nil:
		if record.Eligible {
			return fmt.Sprintf("Accepted! 🔥 Day %d of your streak (%s).", record.Streak, record.Platform)
		}
		return fmt.Sprintf("Accepted, but your streak reset to day %d — the gap was too long for prize eligibility.", record.Streak)
	case errors.Is(err, services.ErrInvalidLink):
		return "That link doesn't look like a Twitter status or LinkedIn post URL. Check it and try again."
	case errors.Is(err, services.ErrAlreadySubmittedToday):
		return "You already submitted within the last 24 hours. Come back tomorrow, or use resubmit to correct today's link."
	default:
		log.Printf("[Bot] submit failed for %s: %v", m.Author.ID, err)
		return "Something went wrong saving your submission — nothing was recorded, please try again in a moment."
	}
}

func (b *Bot) handleStreak(ctx context.Context, m *discordgo.MessageCreate) string {
	streak, err := b.submissions.StreakOf(ctx, m.Author.ID)
	if err != nil {
		log.Printf("[Bot] streak lookup failed for %s: %v", m.Author.ID, err)
		return "Couldn't look up your streak right now, please try again."
	}
	if streak == 0 {
		return "No submissions yet — post your first progress link with submit!"
	}
	return fmt.Sprintf("You're on a %d-day streak. Keep going!", streak)
}

func (b *Bot) handleReport(ctx context.Context) string {
	summaries, err := b.reports.Report(ctx, true)
	if err != nil {
		log.Printf("[Bot] report failed: %v", err)
		return "Couldn't build the report right now, please try again."
	}
	if len(summaries) == 0 {
		return "Nobody is prize-eligible yet."
	}

	var sb strings.Builder
	sb.WriteString("**Prize-eligible participants**\n")
	for _, s := range summaries {
		fmt.Fprintf(&sb, "• %s — day %d (%s)\n", s.DisplayName, s.Streak, s.Platform)
	}
	return sb.String()
}
