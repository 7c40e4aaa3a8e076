package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyward/internal/audio"
	"github.com/vovakirdan/skyward/internal/config"
	"github.com/vovakirdan/skyward/internal/core"
	"github.com/vovakirdan/skyward/internal/economy"
	"github.com/vovakirdan/skyward/internal/games/skyward"
	"github.com/vovakirdan/skyward/internal/scoresync"
	"github.com/vovakirdan/skyward/internal/storage"
)

// Loading stages shown on the progress bar.
const (
	progressIdentity = 0.3
	progressQuery    = 0.5
	progressProfile  = 0.8
	progressReady    = 1.0
)

// readyDelay keeps the full bar on screen briefly before play begins.
const readyDelay = 200 * time.Millisecond

// noticeTTL is how long a notice stays up unless dismissed.
const noticeTTL = 5 * time.Second

// Options configure one play session.
type Options struct {
	Game      config.SkywardConfig
	Runtime   core.RuntimeConfig
	ProfileID string
}

// Services are the collaborators of a session. Any of them may be nil; the
// session then runs offline, silent or without redemption.
type Services struct {
	Store    scoresync.ProfileStore
	Syncer   *scoresync.Syncer
	Redeemer *economy.Redeemer
	Audio    audio.Player
	Logger   *log.Logger
}

type profileLoadedMsg struct {
	profile storage.Profile
	err     error
}

type readyMsg struct{}

type syncFailureMsg scoresync.Failure

type redeemResultMsg struct {
	req economy.Request
	err error
}

type noticeExpiredMsg struct{ id int }

// notice is a dismissible one-line message.
type notice struct {
	id    int
	text  string
	isErr bool
}

// Model is the Bubble Tea model for a skyward session.
type Model struct {
	ctx        context.Context
	opts       Options
	svc        Services
	game       *skyward.Game
	ledger     *economy.Ledger
	bonus      *economy.Bonus
	screen     *core.Screen
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	logger     *log.Logger

	width, height int

	progress     progress.Model
	loadProgress float64

	help help.Model

	dialog    bool
	phone     textinput.Model
	dialogErr string
	redeeming bool

	// offline is set when the profile could not be loaded; nothing is
	// written back so the stored balance survives.
	offline bool

	notice    *notice
	noticeSeq int
	quitting  bool
}

// NewModel creates a session model. The profile is loaded asynchronously
// once the program starts.
func NewModel(ctx context.Context, opts Options, svc Services) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if svc.Audio == nil {
		svc.Audio = audio.Silent{}
	}
	logger := svc.Logger
	if logger == nil {
		logger = log.Default()
	}

	ledger := economy.NewLedger(0)
	rng := rand.New(rand.NewSource(opts.Runtime.Seed))
	game := skyward.New(opts.Game, opts.Runtime.TickRate, ledger, rng)

	ti := textinput.New()
	ti.Placeholder = "05XXXXXXXX"
	ti.CharLimit = 10
	ti.Width = 12

	h := help.New()
	h.ShowAll = false

	m := Model{
		ctx:          ctx,
		opts:         opts,
		svc:          svc,
		game:         game,
		ledger:       ledger,
		bonus:        economy.NewBonus(opts.Game.Economy.BonusPoints, opts.Game.Economy.BonusCooldown, nil),
		screen:       core.NewScreen(0, 0),
		keyMapper:    NewKeyMapper(),
		inputFrame:   core.NewInputFrame(),
		logger:       logger,
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		loadProgress: progressIdentity,
		help:         h,
		phone:        ti,
	}
	m.resize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	return m
}

// Init starts the tick loop, the profile load and the failure listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.opts.Runtime.TickRate),
		m.loadProfileCmd(),
	}
	if m.svc.Syncer != nil {
		cmds = append(cmds, waitForFailure(m.svc.Syncer.Failures()))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.dialog && m.keyMapper.MapMouse(msg) {
			m.inputFrame.Set(core.ActionFlap)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case profileLoadedMsg:
		return m.handleProfileLoaded(msg)

	case readyMsg:
		return m.handleReady()

	case syncFailureMsg:
		if msg.ProfileID != m.opts.ProfileID {
			return m, waitForFailure(m.svc.Syncer.Failures())
		}
		m.logger.Warn("Score sync failed", "profile", msg.ProfileID, "points", msg.Points, "error", msg.Err)
		cmd := m.showNotice("Could not save points to the server. Your progress is kept for this session.", true)
		return m, tea.Batch(cmd, waitForFailure(m.svc.Syncer.Failures()))

	case redeemResultMsg:
		return m.handleRedeemResult(msg)

	case noticeExpiredMsg:
		if m.notice != nil && m.notice.id == msg.id {
			m.notice = nil
		}
		return m, nil
	}

	if m.dialog {
		var cmd tea.Cmd
		m.phone, cmd = m.phone.Update(msg)
		return m, cmd
	}
	return m, nil
}

// resize reserves the bottom row for the status line and hands the rest to
// the game, converting cells to simulation pixels.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	gameH := max(0, height-1)
	m.screen.Resize(width, gameH)
	m.opts.Runtime.ScreenW = width
	m.opts.Runtime.ScreenH = gameH
	m.game.Resize(m.opts.Runtime.Viewport())
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()

	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.dialog {
		return m.handleDialogKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		cmd := m.showNotice("Screenshot saved", false)
		return m, cmd
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		m.notice = nil
		m.help.ShowAll = false
		return m, nil
	case core.ActionBonus:
		return m.claimBonus()
	case core.ActionRedeem:
		return m.openDialog()
	case core.ActionNone:
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.game.Phase() == skyward.PhaseLoading && m.loadProgress < progressQuery {
		m.loadProgress = progressQuery
	}

	res := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.applyStep(res)

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// applyStep mirrors ledger changes and plays cues for a tick's events.
func (m *Model) applyStep(res skyward.StepResult) {
	for _, c := range res.Changes {
		m.mirror(c)
	}
	for _, ev := range res.Events {
		switch ev {
		case skyward.EventFlap:
			m.svc.Audio.Play(audio.CueFlap)
		case skyward.EventCoin:
			m.svc.Audio.Play(audio.CueCoin)
		case skyward.EventCrash:
			m.svc.Audio.Play(audio.CueHit)
			m.recordRun()
		}
	}
}

// mirror enqueues the new balance for persistence.
func (m *Model) mirror(c economy.Change) {
	if m.svc.Syncer == nil || m.offline {
		return
	}
	m.svc.Syncer.Enqueue(m.opts.ProfileID, c.Balance)
}

func (m *Model) recordRun() {
	run := m.game.Run()
	m.logger.Info("Run finished", "profile", m.opts.ProfileID, "points", run.Points, "pipes", run.Pipes, "coins", run.Coins)
	if m.svc.Syncer == nil || m.offline {
		return
	}
	m.svc.Syncer.RecordRun(storage.ScoreEntry{
		ProfileID: m.opts.ProfileID,
		Score:     run.Points,
		Pipes:     run.Pipes,
		Coins:     run.Coins,
	})
}

func (m Model) loadProfileCmd() tea.Cmd {
	ctx, store, id := m.ctx, m.svc.Store, m.opts.ProfileID
	timeout := m.opts.Game.Sync.LoadTimeout
	return func() tea.Msg {
		p, err := scoresync.LoadProfile(ctx, store, id, timeout)
		return profileLoadedMsg{profile: p, err: err}
	}
}

func (m Model) handleProfileLoaded(msg profileLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadProgress = progressProfile
	m.ledger.Reset(msg.profile.Points)
	m.offline = msg.err != nil

	var cmds []tea.Cmd
	if msg.err != nil {
		m.logger.Warn("Profile unavailable, playing offline", "profile", m.opts.ProfileID, "error", msg.err)
		cmds = append(cmds, m.showNotice("Offline: could not load your profile. Points start at 0 and are not saved.", true))
	} else {
		m.logger.Debug("Profile loaded", "profile", msg.profile.ID, "points", msg.profile.Points)
	}
	cmds = append(cmds, tea.Tick(readyDelay, func(time.Time) tea.Msg { return readyMsg{} }))
	return m, tea.Batch(cmds...)
}

func (m Model) handleReady() (tea.Model, tea.Cmd) {
	m.loadProgress = progressReady
	if err := m.game.ProfileLoaded(m.ledger.Balance()); err != nil {
		m.logger.Debug("Ignoring profile load", "phase", m.game.Phase(), "error", err)
	}
	return m, nil
}

// claimBonus grants the bonus reward on the game-over screen.
func (m Model) claimBonus() (tea.Model, tea.Cmd) {
	if m.game.Phase() != skyward.PhaseTerminated {
		return m, nil
	}
	c, err := m.bonus.Claim(m.ledger)
	if err != nil {
		left := m.bonus.Remaining().Round(time.Second)
		cmd := m.showNotice(fmt.Sprintf("Bonus available again in %s", left), true)
		return m, cmd
	}
	m.mirror(c)
	m.svc.Audio.Play(audio.CueCoin)
	cmd := m.showNotice(fmt.Sprintf("+%d bonus points!", c.Delta), false)
	return m, cmd
}

// waitForFailure blocks on the syncer's failure channel.
func waitForFailure(ch <-chan scoresync.Failure) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return nil
		}
		return syncFailureMsg(f)
	}
}

// showNotice replaces the current notice and schedules its expiry.
func (m *Model) showNotice(text string, isErr bool) tea.Cmd {
	m.noticeSeq++
	id := m.noticeSeq
	m.notice = &notice{id: id, text: text, isErr: isErr}
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{id: id} })
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.DataDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("skyward_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// Game returns the simulation driven by this model.
func (m Model) Game() *skyward.Game {
	return m.game
}

// Balance returns the in-memory points balance.
func (m Model) Balance() int {
	return m.ledger.Balance()
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for one local session.
func Run(ctx context.Context, opts Options, svc Services) error {
	model := NewModel(ctx, opts, svc)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
