package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/services/game"
	"github.com/KirkDiggler/portal/internal/services/mission"
	"github.com/KirkDiggler/portal/internal/services/voting"
	"github.com/bwmarrin/discordgo"
)

// portalBar draws the portal level as a 20 cell bar
func portalBar(level int) string {
	level = models.ClampPortal(level)
	return fmt.Sprintf("`%s%s` %d/%d",
		strings.Repeat("█", level),
		strings.Repeat("░", models.PortalMax-level),
		level, models.PortalMax)
}

func roleLabel(role models.PlayerRole) string {
	if role == models.RoleAltered {
		return "ALTERED"
	}
	return "HUMAN"
}

// renderLogin reveals the role, so it is only shown to the player
func renderLogin(out *game.LoginOutput) *response {
	color := colorSuccess
	description := "You are **HUMAN**. Solve riddles and scan the right badges to close the portal."
	if out.Player.IsAltered() {
		color = colorAltered
		description = "You are **ALTERED**. Blend in, open the portal, and use your traps wisely."
	}
	return &response{
		Title:       out.Message,
		Description: description,
		Color:       color,
		Ephemeral:   true,
	}
}

func renderStatus(state *models.GameState, player *models.Player, session *models.VotingSession) *response {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Portal", Value: portalBar(state.PortalLevel)},
		{Name: "Game", Value: string(state.Status), Inline: true},
		{Name: "Missions done", Value: fmt.Sprintf("%d", state.TotalMissionsCompleted), Inline: true},
		{Name: "Your role", Value: roleLabel(player.Role), Inline: true},
		{Name: "Your missions", Value: fmt.Sprintf("%d completed", len(player.MissionsCompleted)), Inline: true},
	}
	if player.Traps != nil {
		trapStatus := fmt.Sprintf("%d left", player.Traps.Remaining)
		if player.Traps.Active != nil {
			trapStatus += fmt.Sprintf(", armed against %s", player.Traps.Active.TargetName)
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Traps", Value: trapStatus, Inline: true})
	}
	if session != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Vote open",
			Value: fmt.Sprintf("%d/%d voted, closes <t:%d:R>", len(session.Votes), len(session.EligibleVoters), session.EndsAt.Unix()),
		})
	}

	description := ""
	switch {
	case state.Status == models.GameStatusEnded:
		description = fmt.Sprintf("The game is over: the %s won (%s).", state.Winner, state.EndReason.Description())
	case player.IsEliminated:
		description = "You have been eliminated."
	}

	return &response{
		Title:       fmt.Sprintf("%s's status", player.Name),
		Description: description,
		Fields:      fields,
		Color:       colorInfo,
		Ephemeral:   true,
	}
}

func renderMission(player *models.Player) *response {
	if player.IsEliminated {
		return errorResponse("You have been eliminated and have no missions.")
	}
	m := player.CurrentMission
	if m == nil {
		if player.AllMissionsCompleted {
			return &response{Title: "All missions complete", Description: "You have solved every riddle.", Color: colorSuccess, Ephemeral: true}
		}
		return &response{Title: "No mission", Description: "You do not have a mission yet.", Color: colorWarning, Ephemeral: true}
	}

	return &response{
		Title:       fmt.Sprintf("Mission (tier %d)", m.Tier),
		Description: fmt.Sprintf("*%s*\n\n%s", m.Riddle, m.Instruction),
		Color:       colorInfo,
		Ephemeral:   true,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Queued", Value: fmt.Sprintf("%d", len(player.MissionQueue)), Inline: true},
		},
	}
}

func renderScan(out *mission.ValidateMissionOutput) *response {
	r := &response{Description: out.Message, Ephemeral: true}
	switch {
	case out.GameEnded:
		r.Title = "Game over"
		r.Color = colorSuccess
		r.Ephemeral = false
	case out.IsCorrectTarget:
		r.Title = "Mission complete!"
		r.Color = colorSuccess
	default:
		r.Title = "Wrong target"
		r.Color = colorWarning
	}

	r.Fields = append(r.Fields, &discordgo.MessageEmbedField{Name: "Portal", Value: portalBar(out.PortalLevel)})
	if out.NextWait > 0 {
		r.Fields = append(r.Fields, &discordgo.MessageEmbedField{Name: "Next scan in", Value: out.NextWait.String(), Inline: true})
	}
	if out.NextMission != nil {
		r.Fields = append(r.Fields, &discordgo.MessageEmbedField{Name: "Next riddle", Value: out.NextMission.Riddle})
	}
	if out.MeetingTriggered {
		r.Fields = append(r.Fields, &discordgo.MessageEmbedField{Name: "Meeting", Value: "An emergency meeting has been called. Use `/portal vote`."})
	}
	return r
}

func renderVoteMenu(session *models.VotingSession, players []*models.Player, voterID string) *response {
	options := make([]discordgo.SelectMenuOption, 0, len(players))
	for _, p := range players {
		if p.ID == voterID {
			continue
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:   p.Name,
			Value:   p.ID,
			Default: session.Votes[voterID] == p.ID,
		})
	}
	if len(options) == 0 {
		return errorResponse("There is nobody to vote for.")
	}

	return &response{
		Title:       "Cast your vote",
		Description: fmt.Sprintf("Who should be eliminated? Voting closes <t:%d:R>.", session.EndsAt.Unix()),
		Color:       colorWarning,
		Ephemeral:   true,
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    SelectCastVote,
				Placeholder: "Select a player",
				Options:     options,
			},
		},
	}
}

func renderVote(out *voting.CastVoteOutput) *response {
	if !out.Finalized || out.Result == nil {
		return &response{
			Title:       out.Message,
			Description: fmt.Sprintf("%d/%d players have voted.", len(out.Session.Votes), len(out.Session.EligibleVoters)),
			Color:       colorInfo,
			Ephemeral:   true,
		}
	}

	r := &response{Title: "The vote is over", Description: out.Result.Message, Color: colorWarning}
	if out.Result.GameEnded {
		r.Fields = append(r.Fields, &discordgo.MessageEmbedField{
			Name:  "Game over",
			Value: fmt.Sprintf("The %s won (%s).", out.Result.Winner, out.Result.EndReason.Description()),
		})
	}
	return r
}

func renderEvents(events []*models.GameEvent) *response {
	if len(events) == 0 {
		return &response{Title: "Latest events", Description: "Nothing has happened yet.", Color: colorInfo, Ephemeral: true}
	}
	var sb strings.Builder
	for _, e := range events {
		fmt.Fprintf(&sb, "<t:%d:t> %s\n", e.Timestamp.Unix(), e.Message)
	}
	return &response{Title: "Latest events", Description: sb.String(), Color: colorInfo, Ephemeral: true}
}

// renderFeedEvent formats an event posted to the feed channel
func renderFeedEvent(e *models.GameEvent) *discordgo.MessageEmbed {
	color := colorInfo
	switch e.Type {
	case models.EventPortalIncreased, models.EventAlteredVictory:
		color = colorAltered
	case models.EventPortalDecreased, models.EventHumanVictory, models.EventMissionCompleted:
		color = colorSuccess
	case models.EventPlayerEliminated, models.EventMeetingTriggered, models.EventVotingStarted:
		color = colorWarning
	}
	return &discordgo.MessageEmbed{
		Description: e.Message,
		Color:       color,
		Timestamp:   e.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	}
}
