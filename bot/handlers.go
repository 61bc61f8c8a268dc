/* handlers.go
 * Contains the handler methods behind each chat command. Handlers accept the
 * DiscordSession interface so they can be driven by a mock session in tests
 */

package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"

	"scorix-ops/api/logic"
)

// commandArgs splits a command message into arguments. We use splitter here
// instead of strings.Fields so team names that contain spaces can be quoted,
// e.g. "Circuit Breakers" is recognised as one team not two
func commandArgs(content string) []string {
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	parts, _ := spaceSplitter.Split(content)

	args := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), "\"")
		p = strings.Trim(p, "“”")
		if p != "" {
			args = append(args, p)
		}
	}
	return args
}

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Tournament Ops Bot\n")
	res.WriteString("`$teams`: lists the teams currently on the roster\n")
	res.WriteString("`$schedule`: shows every scheduled match with its status and scores\n")
	res.WriteString("`$next`: shows the match currently flagged next up\n")
	res.WriteString("`$leaderboard`: total scores from the scoring feed, highest first\n")
	res.WriteString("`$average`: average score per game played, highest first\n")
	res.WriteString("`$standings`: totals derived from played matches in the schedule\n")
	res.WriteString("`$finals`: shows the finals bracket state\n")
	res.WriteString("`$note \"Team Name\" text...`: stores an operator note for a team\n")
	res.WriteString("`$notes \"Team Name\"`: shows the stored note for a team\n")
	res.WriteString("Team names are fuzzy matched; names with spaces need double quotes\n")
	res.WriteString("`$sync`: pulls the latest scores from the feed into the schedule\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// teamsHandler handles the $teams command
func (b *Bot) teamsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	teams := b.APIPtr.Teams()
	if len(teams) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No teams on the roster yet")
		return
	}

	var res strings.Builder
	res.WriteString("Teams on the roster:\n")
	for _, team := range teams {
		res.WriteString(fmt.Sprintf("- %s\n", team))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// scheduleHandler handles the $schedule command
func (b *Bot) scheduleHandler(session DiscordSession, message *discordgo.MessageCreate) {
	matches := b.APIPtr.Matches()
	if len(matches) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No matches scheduled")
		return
	}

	var res strings.Builder
	res.WriteString("Match schedule:\n")
	for i, m := range matches {
		if m.Played {
			res.WriteString(fmt.Sprintf("%d. %s %d - %d %s [%s]\n", i+1, m.Team1, m.Score1, m.Score2, m.Team2, m.Status))
		} else {
			res.WriteString(fmt.Sprintf("%d. %s vs %s [%s]\n", i+1, m.Team1, m.Team2, m.Status))
		}
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// nextHandler handles the $next command
func (b *Bot) nextHandler(session DiscordSession, message *discordgo.MessageCreate) {
	payload, err := b.APIPtr.DisplayPayload()
	if err != nil {
		b.log(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting the next match")
		return
	}
	if payload.TeamAName == "" {
		session.ChannelMessageSend(message.ChannelID, "No match is flagged next up")
		return
	}
	res := fmt.Sprintf("Next up (match %s, %s): %s (rank %d) vs %s (rank %d)",
		payload.MatchNumber, payload.TableNumber,
		payload.TeamAName, payload.TeamARank,
		payload.TeamBName, payload.TeamBRank)
	session.ChannelMessageSend(message.ChannelID, res)
}

// leaderboardHandler handles the $leaderboard command
func (b *Bot) leaderboardHandler(session DiscordSession, message *discordgo.MessageCreate) {
	rows, err := b.APIPtr.Leaderboard()
	if err != nil {
		b.log(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting the leaderboard")
		return
	}
	if len(rows) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No games recorded yet")
		return
	}

	var res strings.Builder
	res.WriteString("Leaderboard (total score):\n")
	for i, row := range rows {
		res.WriteString(fmt.Sprintf("%d. %s: %d points over %d games\n", i+1, row.Team, row.Score, row.Games))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// averageHandler handles the $average command
func (b *Bot) averageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	rows, err := b.APIPtr.AverageLeaderboard()
	if err != nil {
		b.log(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting the average leaderboard")
		return
	}
	if len(rows) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No games recorded yet")
		return
	}

	var res strings.Builder
	res.WriteString("Leaderboard (average score):\n")
	for i, row := range rows {
		res.WriteString(fmt.Sprintf("%d. %s: %.1f average over %d games\n", i+1, row.Team, row.Average, row.Games))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// standingsHandler handles the $standings command
func (b *Bot) standingsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	rows := b.APIPtr.ScheduleTotals()
	if len(rows) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No teams on the roster yet")
		return
	}

	var res strings.Builder
	res.WriteString("Standings from played matches:\n")
	for i, row := range rows {
		res.WriteString(fmt.Sprintf("%d. %s: %d points over %d matches\n", i+1, row.Team, row.Score, row.Games))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// finalsHandler handles the $finals command
func (b *Bot) finalsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	bracket := b.APIPtr.Bracket()
	if bracket == nil {
		session.ChannelMessageSend(message.ChannelID, "Finals have not started")
		return
	}

	var res strings.Builder
	res.WriteString("Finals bracket:\n")
	for i, semi := range bracket.Semifinals {
		res.WriteString(fmt.Sprintf("Semifinal %d: %s vs %s [%s]", i+1, semi.Team1, semi.Team2, semi.Status))
		if semi.Winner != "" {
			res.WriteString(fmt.Sprintf(" winner: %s", semi.Winner))
		}
		res.WriteString("\n")
	}
	if bracket.Final.Team1 != "" {
		res.WriteString(fmt.Sprintf("Final: %s vs %s [%s]\n", bracket.Final.Team1, bracket.Final.Team2, bracket.Final.Status))
		res.WriteString(fmt.Sprintf("Third place: %s vs %s [%s]\n", bracket.ThirdPlace.Team1, bracket.ThirdPlace.Team2, bracket.ThirdPlace.Status))
	} else {
		res.WriteString("Final and third place match are waiting on the semifinals\n")
	}
	if bracket.Champion != "" {
		res.WriteString(fmt.Sprintf("Champion: %s, runner up: %s\n", bracket.Champion, bracket.RunnerUp))
	}
	if bracket.ThirdPlaceTeam != "" {
		res.WriteString(fmt.Sprintf("Third place: %s\n", bracket.ThirdPlaceTeam))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// setNoteHandler handles the $note command: $note "Team Name" note text...
func (b *Bot) setNoteHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := commandArgs(message.Content)
	if len(args) < 3 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $note \"Team Name\" note text")
		return
	}

	team, ok := logic.ResolveTeamName(args[1], b.APIPtr.Teams())
	if !ok {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No team on the roster matches '%s'", args[1]))
		return
	}

	note := strings.Join(args[2:], " ")
	if err := b.APIPtr.SetTeamNote(team, note); err != nil {
		b.log(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured storing the note")
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Note stored for %s", team))
}

// getNoteHandler handles the $notes command: $notes "Team Name"
func (b *Bot) getNoteHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := commandArgs(message.Content)
	if len(args) < 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $notes \"Team Name\"")
		return
	}

	team, ok := logic.ResolveTeamName(args[1], b.APIPtr.Teams())
	if !ok {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No team on the roster matches '%s'", args[1]))
		return
	}

	note, ok := b.APIPtr.TeamNotes()[team]
	if !ok || note == "" {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No note stored for %s", team))
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s: %s", team, note))
}

// syncHandler handles the $sync command
func (b *Bot) syncHandler(session DiscordSession, message *discordgo.MessageCreate) {
	if err := b.APIPtr.SyncScores(); err != nil {
		b.log(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured syncing scores from the feed")
		return
	}
	session.ChannelMessageSend(message.ChannelID, "Scores synced from the feed")
}

// newMessageHandler routes messages to appropriate handlers.
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author.ID == botUserID {
		return
	}

	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$teams"):
		b.teamsHandler(session, message)

	case startsWith(message.Content, "$schedule"):
		b.scheduleHandler(session, message)

	case startsWith(message.Content, "$next"):
		b.nextHandler(session, message)

	case startsWith(message.Content, "$leaderboard"):
		b.leaderboardHandler(session, message)

	case startsWith(message.Content, "$average"):
		b.averageHandler(session, message)

	case startsWith(message.Content, "$standings"):
		b.standingsHandler(session, message)

	case startsWith(message.Content, "$finals"):
		b.finalsHandler(session, message)

	case startsWith(message.Content, "$notes"):
		b.getNoteHandler(session, message)

	case startsWith(message.Content, "$note"):
		b.setNoteHandler(session, message)

	case startsWith(message.Content, "$sync"):
		b.syncHandler(session, message)
	}
}

// startsWith reports whether the message begins with the given command prefix
func startsWith(inputString string, substring string) bool {
	return strings.HasPrefix(inputString, substring)
}
