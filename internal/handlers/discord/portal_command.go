package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KirkDiggler/portal/internal/services/game"
	"github.com/KirkDiggler/portal/internal/services/mission"
	"github.com/KirkDiggler/portal/internal/services/suspicion"
	"github.com/KirkDiggler/portal/internal/services/trap"
	"github.com/KirkDiggler/portal/internal/services/voting"
	"github.com/bwmarrin/discordgo"
)

// SelectCastVote is the custom ID of the vote dropdown
const SelectCastVote = "portal_vote"

// commandTimeout bounds each interaction; Discord drops replies after 3s
const commandTimeout = 2500 * time.Millisecond

// PortalCommand handles the /portal command
type PortalCommand struct {
	BaseCommand
	gameService game.Service
	links       LinkStore
}

func stringOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    true,
	}
}

func subCommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

// NewPortalCommand creates a new portal command handler
func NewPortalCommand(gameService game.Service, links LinkStore) *PortalCommand {
	voteTarget := stringOption("target", "Player code to vote for; leave empty to pick from a list")
	voteTarget.Required = false

	return &PortalCommand{
		BaseCommand: BaseCommand{
			Name:        "portal",
			Description: "Play the portal game",
			Options: []*discordgo.ApplicationCommandOption{
				subCommand("login", "Link your Discord account to your badge", stringOption("code", "The code or link on your badge")),
				subCommand("status", "Show the portal and your progress"),
				subCommand("mission", "Show your current riddle"),
				subCommand("scan", "Scan another player's badge", stringOption("code", "The code or link on their badge")),
				subCommand("trap", "Arm an inverse trap against a human", stringOption("target", "The human's badge code")),
				subCommand("steal", "Guess a human's mission target",
					stringOption("human", "The human's badge code"),
					stringOption("guess", "Who you think they are looking for")),
				subCommand("canceltrap", "Disarm your trap and get it back"),
				subCommand("vote", "Vote in the open session", voteTarget),
				subCommand("meeting", "Call an emergency vote"),
				subCommand("suspect", "Add a player to your suspects", stringOption("player", "Their badge code")),
				subCommand("events", "Show the latest game events"),
			},
		},
		gameService: gameService,
		links:       links,
	}
}

// Handle processes a Discord interaction for the portal command
func (c *PortalCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}
	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	userID, _ := interactionUser(i)
	sub := data.Options[0]
	options := make(map[string]string, len(sub.Options))
	for _, opt := range sub.Options {
		options[opt.Name] = opt.StringValue()
	}

	return c.dispatch(ctx, userID, sub.Name, options).send(s, i)
}

// HandleVoteSelect processes a pick from the vote dropdown
func (c *PortalCommand) HandleVoteSelect(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return RespondWithEphemeralMessage(s, i, "Pick a player to vote for.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	userID, _ := interactionUser(i)
	return c.vote(ctx, userID, values[0]).update(s, i)
}

func (c *PortalCommand) dispatch(ctx context.Context, userID, sub string, options map[string]string) *response {
	if sub == "login" {
		return c.login(ctx, userID, options["code"])
	}
	if sub == "events" {
		return c.events(ctx)
	}

	playerID, err := c.links.PlayerFor(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotLinked) {
			return errorResponse("Use `/portal login` with the code on your badge first.")
		}
		log.Printf("Error looking up discord link for %s: %v", userID, err)
		return errorResponse(game.UserMessage(err))
	}

	switch sub {
	case "status":
		return c.status(ctx, playerID)
	case "mission":
		return c.mission(ctx, playerID)
	case "scan":
		return c.scan(ctx, playerID, options["code"])
	case "trap":
		return c.trap(ctx, playerID, options["target"])
	case "steal":
		return c.steal(ctx, playerID, options["human"], options["guess"])
	case "canceltrap":
		return c.cancelTrap(ctx, playerID)
	case "vote":
		if options["target"] == "" {
			return c.voteMenu(ctx, playerID)
		}
		return c.vote(ctx, userID, options["target"])
	case "meeting":
		return c.meeting(ctx, playerID)
	case "suspect":
		return c.suspect(ctx, playerID, options["player"])
	default:
		return errorResponse(fmt.Sprintf("Unknown subcommand: %s", sub))
	}
}

func (c *PortalCommand) login(ctx context.Context, userID, code string) *response {
	out, err := c.gameService.Login(ctx, &game.LoginInput{Code: code})
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	if err := c.links.Link(ctx, userID, out.Player.ID); err != nil {
		log.Printf("Error linking discord user %s to %s: %v", userID, out.Player.ID, err)
		return errorResponse(game.UserMessage(err))
	}
	return renderLogin(out)
}

func (c *PortalCommand) status(ctx context.Context, playerID string) *response {
	player, err := c.gameService.GetPlayer(ctx, &game.GetPlayerInput{PlayerID: playerID})
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	state, err := c.gameService.GetGameState(ctx)
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	session, err := c.gameService.GetActiveVotingSession(ctx)
	if err != nil {
		log.Printf("Error getting active vote: %v", err)
	}
	return renderStatus(state, player, session)
}

func (c *PortalCommand) mission(ctx context.Context, playerID string) *response {
	player, err := c.gameService.GetPlayer(ctx, &game.GetPlayerInput{PlayerID: playerID})
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	return renderMission(player)
}

func (c *PortalCommand) scan(ctx context.Context, playerID, code string) *response {
	out, err := c.gameService.ValidateScan(ctx, &mission.ValidateMissionInput{PlayerID: playerID, ScannedID: code})
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	return renderScan(out)
}

func (c *PortalCommand) trap(ctx context.Context, playerID, target string) *response {
	out, err := c.gameService.ActivateInverseTrap(ctx, &trap.ActivateInverseTrapInput{AlteredID: playerID, TargetID: target})
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	return &response{
		Title:       "Trap armed",
		Description: out.Message,
		Color:       colorAltered,
		Ephemeral:   true,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Traps left", Value: fmt.Sprintf("%d", out.TrapsRemaining), Inline: true},
		},
	}
}

func (c *PortalCommand) steal(ctx context.Context, playerID, human, guess string) *response {
	out, err := c.gameService.AttemptMissionTheft(ctx, &trap.AttemptMissionTheftInput{
		AlteredID:       playerID,
		TargetID:        human,
		GuessedTargetID: guess,
	})
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	color := colorWarning
	title := "Wrong guess"
	if out.Correct {
		color = colorAltered
		title = "Mission stolen"
	}
	return &response{Title: title, Description: out.Message, Color: color, Ephemeral: true}
}

func (c *PortalCommand) cancelTrap(ctx context.Context, playerID string) *response {
	out, err := c.gameService.CancelTrap(ctx, &trap.CancelTrapInput{AlteredID: playerID})
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	return &response{
		Title:       "Trap cancelled",
		Description: out.Message,
		Color:       colorAltered,
		Ephemeral:   true,
	}
}

func (c *PortalCommand) voteMenu(ctx context.Context, playerID string) *response {
	session, err := c.gameService.GetActiveVotingSession(ctx)
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	if session == nil {
		return errorResponse("There is no vote open right now.")
	}
	players, err := c.gameService.ListPlayers(ctx, &game.ListPlayersInput{ActiveOnly: true})
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	return renderVoteMenu(session, players.Players, playerID)
}

// vote resolves the Discord user again so it can serve both the slash
// command and the dropdown
func (c *PortalCommand) vote(ctx context.Context, userID, target string) *response {
	playerID, err := c.links.PlayerFor(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotLinked) {
			return errorResponse("Use `/portal login` with the code on your badge first.")
		}
		return errorResponse(game.UserMessage(err))
	}

	session, err := c.gameService.GetActiveVotingSession(ctx)
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	if session == nil {
		return errorResponse("There is no vote open right now.")
	}

	out, err := c.gameService.CastVote(ctx, &voting.CastVoteInput{
		SessionID: session.ID,
		VoterID:   playerID,
		TargetID:  target,
	})
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	return renderVote(out)
}

func (c *PortalCommand) meeting(ctx context.Context, playerID string) *response {
	out, err := c.gameService.StartVoting(ctx, &voting.StartVotingSessionInput{InitiatorID: playerID})
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	return &response{
		Title:       "Emergency meeting!",
		Description: fmt.Sprintf("%s Use `/portal vote` before <t:%d:t>.", out.Message, out.Session.EndsAt.Unix()),
		Color:       colorWarning,
	}
}

func (c *PortalCommand) suspect(ctx context.Context, playerID, suspect string) *response {
	out, err := c.gameService.AddSuspect(ctx, &suspicion.SuspectInput{PlayerID: playerID, SuspectID: suspect})
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	return &response{
		Title:       "Suspicion noted",
		Description: out.Message,
		Color:       colorInfo,
		Ephemeral:   true,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Suspects", Value: fmt.Sprintf("%d", len(out.Suspicions)), Inline: true},
		},
	}
}

func (c *PortalCommand) events(ctx context.Context) *response {
	out, err := c.gameService.ListEvents(ctx, &game.ListEventsInput{Limit: 10})
	if err != nil {
		return errorResponse(game.UserMessage(err))
	}
	return renderEvents(out.Events)
}
