package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-stopwatch/internal/config"
	"go-stopwatch/internal/gemini"
	"go-stopwatch/internal/issuekey"
	"go-stopwatch/internal/jira"
	"go-stopwatch/internal/timeparse"
	"go-stopwatch/internal/ui"

	"github.com/pterm/pterm"
)

const maxLoginAttempts = 3

type Runner struct {
	cfg    *config.Config
	jira   *jira.Client
	gemini *gemini.Assistant // nil when no API key is configured
	log    *pterm.Logger

	issueKey string
	elapsed  time.Duration
	issues   []jira.Issue
}

func NewRunner(cfg *config.Config, jiraClient *jira.Client, geminiAssistant *gemini.Assistant, logger *pterm.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		jira:   jiraClient,
		gemini: geminiAssistant,
		log:    logger,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	session, err := r.authenticate(ctx)
	if err != nil {
		return err
	}
	ui.PrintWelcome(session.Name)

	if err := r.search(ctx, r.cfg.DefaultJQL); err != nil {
		r.report(err)
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		prompt := "> "
		if r.issueKey != "" {
			prompt = r.issueKey + " > "
		}
		input, ok := ui.ReadInput(prompt)
		if !ok || ui.IsExitCommand(input) {
			r.warnUnlogged()
			ui.PrintFarewell()
			return nil
		}
		if input == "" {
			continue
		}

		cmd, isCmd := ui.ParseCommand(input)
		if !isCmd {
			// Bare input is treated as an issue key or pasted URL.
			cmd = ui.Command{Name: "/issue", Args: input}
		}
		r.log.Debug("command", r.log.Args("name", cmd.Name, "args", cmd.Args))

		if err := r.dispatch(ctx, cmd); err != nil {
			r.report(err)
		}
	}
}

func (r *Runner) dispatch(ctx context.Context, cmd ui.Command) error {
	switch cmd.Name {
	case "/issue":
		return r.selectIssue(ctx, cmd.Args)
	case "/search":
		jql := cmd.Args
		if jql == "" {
			jql = r.cfg.DefaultJQL
		}
		return r.search(ctx, jql)
	case "/filters":
		return r.filters(ctx)
	case "/start":
		return r.startStopwatch()
	case "/add":
		d, ok := timeparse.Parse(cmd.Args)
		if !ok {
			return fmt.Errorf("cannot parse %q, use e.g. 1h 15m", cmd.Args)
		}
		r.elapsed += d
		ui.PrintElapsed(r.issueKey, r.elapsed)
		return nil
	case "/reset":
		r.elapsed = 0
		ui.PrintElapsed(r.issueKey, r.elapsed)
		return nil
	case "/log":
		return r.logWork(ctx, cmd.Args)
	case "/comment":
		return r.comment(ctx, cmd.Args)
	case "/transition":
		return r.transition(ctx)
	case "/ai":
		return r.draft(ctx, cmd.Args)
	case "/info":
		return r.info(ctx)
	case "/login":
		return r.relogin(ctx)
	case "/help":
		ui.PrintCommands()
		return nil
	case "/clear":
		pterm.Print("\033[H\033[2J")
		return nil
	}
	return fmt.Errorf("unknown command %s, type /help", cmd.Name)
}

// authenticate validates the stored credentials and asks for new ones while Jira denies them.
func (r *Runner) authenticate(ctx context.Context) (*jira.Session, error) {
	for attempt := 1; ; attempt++ {
		spinner, _ := pterm.DefaultSpinner.Start("Connecting to " + r.cfg.JiraURL + "...")
		session, err := r.jira.ValidateSession(ctx)
		spinner.Stop()
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, jira.ErrRequestDenied) || attempt >= maxLoginAttempts {
			return nil, err
		}
		ui.PrintError(r.jira.ErrorMessage())
		if err := r.promptCredentials(); err != nil {
			return nil, err
		}
	}
}

func (r *Runner) relogin(ctx context.Context) error {
	if err := r.promptCredentials(); err != nil {
		return err
	}
	session, err := r.jira.ValidateSession(ctx)
	if err != nil {
		return err
	}
	pterm.Success.Println("Logged in as " + session.Name)
	return nil
}

func (r *Runner) promptCredentials() error {
	user, token, err := ui.ReadCredentials(r.cfg.JiraUsername)
	if err != nil {
		return err
	}
	r.jira.SetAuthentication(user, token)
	if err := storeCredentials(r.cfg, user, token); err != nil {
		r.log.Warn("could not save credentials", r.log.Args("error", err))
	}
	return nil
}

// storeCredentials records a new login in cfg. Only the keychain entry is
// rewritten unless the username changed.
func storeCredentials(cfg *config.Config, user, token string) error {
	cfg.JiraAPIToken = token
	if user == cfg.JiraUsername {
		return config.SaveToken(user, token)
	}
	cfg.JiraUsername = user
	return config.Save(cfg)
}

func (r *Runner) search(ctx context.Context, jql string) error {
	spinner, _ := pterm.DefaultSpinner.Start("Searching issues...")
	issues, err := r.jira.SearchIssues(ctx, jql)
	spinner.Stop()
	if err != nil {
		return err
	}
	r.log.Debug("search", r.log.Args("jql", jql, "results", len(issues)))

	r.issues = issues
	if len(issues) == 0 {
		ui.PrintStatus("No issues match " + jql)
		return nil
	}
	ui.PrintIssuesTable(issues)
	return nil
}

func (r *Runner) filters(ctx context.Context) error {
	filters, err := r.jira.FavoriteFilters(ctx)
	if err != nil {
		return err
	}
	if len(filters) == 0 {
		ui.PrintStatus("You have no favourite filters.")
		return nil
	}
	f, err := ui.SelectFilter(filters)
	if err != nil {
		return err
	}
	return r.search(ctx, f.JQL)
}

func (r *Runner) selectIssue(ctx context.Context, text string) error {
	key := issuekey.Extract(text)
	if text == "" && len(r.issues) > 0 {
		var err error
		if key, err = ui.SelectIssue(r.issues); err != nil {
			return err
		}
	}
	if !issuekey.Valid(key) {
		return fmt.Errorf("%q is not an issue key", text)
	}

	issue, err := r.jira.IssueSummary(ctx, key)
	if err != nil {
		return err
	}
	tt, err := r.jira.IssueTimetracking(ctx, key)
	if err != nil {
		return err
	}

	if r.issueKey != "" && r.issueKey != issue.Key && r.elapsed > 0 {
		ui.PrintStatus(fmt.Sprintf("Stopwatch time %s moves from %s to %s.",
			timeparse.FormatDuration(r.elapsed), r.issueKey, issue.Key))
	}
	r.issueKey = issue.Key
	ui.PrintIssue(issue, tt)
	return nil
}

func (r *Runner) requireIssue() error {
	if r.issueKey == "" {
		return errors.New("select an issue first with /issue KEY")
	}
	return nil
}

func (r *Runner) startStopwatch() error {
	if err := r.requireIssue(); err != nil {
		return err
	}
	elapsed, err := ui.RunStopwatch(r.issueKey, r.elapsed)
	r.elapsed = elapsed
	return err
}

func (r *Runner) logWork(ctx context.Context, args string) error {
	if err := r.requireIssue(); err != nil {
		return err
	}
	timeSpent, fromStopwatch, err := resolveTimeSpent(args, r.elapsed)
	if err != nil {
		return err
	}

	method := r.cfg.Estimate("").Method
	in, err := ui.ReadWorklog(r.issueKey, timeSpent, method)
	if err != nil {
		return err
	}

	started := time.Now().Add(-in.TimeSpent)
	if _, err := r.jira.PostWorklog(ctx, r.issueKey, started, in.TimeSpent, in.Comment, in.Adjustment); err != nil {
		return err
	}
	ui.PrintLogResult(r.issueKey, in.TimeSpent, nil)
	r.log.Info("worklog posted", r.log.Args("issue", r.issueKey, "timeSpent", timeparse.FormatDuration(in.TimeSpent)))

	if fromStopwatch {
		r.elapsed = remainingAfterLog(r.elapsed, in.TimeSpent)
	}
	return nil
}

// resolveTimeSpent picks the duration to log: an explicit argument, or the stopwatch time.
func resolveTimeSpent(args string, elapsed time.Duration) (d time.Duration, fromStopwatch bool, err error) {
	if args != "" {
		d, ok := timeparse.Parse(args)
		if !ok {
			return 0, false, fmt.Errorf("cannot parse %q, use e.g. 2h 30m", args)
		}
		return d, false, nil
	}
	return elapsed.Truncate(time.Minute), true, nil
}

// remainingAfterLog keeps the seconds and any minutes that were not logged.
func remainingAfterLog(elapsed, logged time.Duration) time.Duration {
	if logged >= elapsed {
		return 0
	}
	return elapsed - logged
}

func (r *Runner) comment(ctx context.Context, text string) error {
	if err := r.requireIssue(); err != nil {
		return err
	}
	if text == "" {
		var err error
		if text, err = ui.ReadText("Comment on " + r.issueKey); err != nil {
			return err
		}
	}
	if text == "" {
		ui.PrintCancelled()
		return nil
	}
	if _, err := r.jira.PostComment(ctx, r.issueKey, text); err != nil {
		return err
	}
	pterm.Success.Println("Comment added to " + r.issueKey)
	return nil
}

func (r *Runner) transition(ctx context.Context) error {
	if err := r.requireIssue(); err != nil {
		return err
	}
	transitions, err := r.jira.Transitions(ctx, r.issueKey)
	if err != nil {
		return err
	}
	if len(transitions) == 0 {
		ui.PrintStatus("No transitions available for " + r.issueKey)
		return nil
	}
	ui.PrintTransitions(transitions)

	tr, err := ui.SelectTransition(transitions)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(tr.ID)
	if err != nil {
		return fmt.Errorf("transition %q has a non-numeric id", tr.Name)
	}
	if err := r.jira.DoTransition(ctx, r.issueKey, id); err != nil {
		return err
	}
	pterm.Success.Printfln("%s moved to %s", r.issueKey, tr.To.Name)
	return nil
}

func (r *Runner) draft(ctx context.Context, note string) error {
	if r.gemini == nil {
		return errors.New("no Gemini API key configured, run `stopwatch config`")
	}
	if note == "" {
		var err error
		if note, err = ui.ReadText("What did you work on?"); err != nil {
			return err
		}
	}

	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(r.gemini.Model() + " is drafting worklogs...")
	drafts, err := r.gemini.DraftWorklogs(ctx, r.issues, r.elapsed, note)
	spinner.Stop()
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		ui.PrintStatus("Gemini could not map the note to any issue.")
		return nil
	}

	ui.PrintDrafts(drafts)
	if !ui.ConfirmYesNo("Post these worklogs to Jira?") {
		ui.PrintCancelled()
		return nil
	}

	adj := r.cfg.Estimate("")
	if adj.Method == jira.EstimateSetTo || adj.Method == jira.EstimateManualDecrease {
		adj = jira.Auto()
	}
	var logged time.Duration
	for _, d := range drafts {
		spinner, _ := pterm.DefaultSpinner.Start("Logging " + d.IssueKey + "...")
		_, err := r.jira.PostWorklog(ctx, d.IssueKey, time.Now().Add(-d.TimeSpent), d.TimeSpent, d.Comment, adj)
		spinner.Stop()
		ui.PrintLogResult(d.IssueKey, d.TimeSpent, err)
		if err == nil {
			logged += d.TimeSpent
		}
	}
	r.elapsed = remainingAfterLog(r.elapsed, logged)
	return nil
}

func (r *Runner) info(ctx context.Context) error {
	cfg, err := r.jira.Configuration(ctx)
	if err != nil {
		return err
	}
	ui.PrintConfiguration(cfg)
	return nil
}

func (r *Runner) report(err error) {
	r.log.Debug("command failed", r.log.Args("error", err))
	if errors.Is(err, jira.ErrRequestDenied) {
		ui.PrintError(r.jira.ErrorMessage())
		ui.PrintStatus("Jira denied the request. Use /login to enter new credentials.")
		return
	}
	ui.PrintError(err.Error())
}

func (r *Runner) warnUnlogged() {
	if r.elapsed >= time.Minute {
		ui.PrintStatus(fmt.Sprintf("%s of stopwatch time on %s was not logged.",
			timeparse.FormatDuration(r.elapsed), r.issueKey))
	}
}
