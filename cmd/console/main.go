// Консольный клиент поверх движка состояния: вход, вакансии, отклики, уведомления.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"hirehub/internal/app"
	"hirehub/internal/config"
	"hirehub/internal/gateway"
	"hirehub/internal/logger"
	"hirehub/internal/models"
	"hirehub/internal/storage"
	"hirehub/internal/workers"
	"hirehub/pkg/apperrors"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (overrides CONFIG_PATH)")
	quiet := flag.Bool("quiet", false, "do not print collection events")
	flag.Parse()

	if *configPath != "" {
		_ = os.Setenv("CONFIG_PATH", *configPath)
	}
	config.LoadConfig()
	cfg := config.GetConfig()
	logger.InitWithWriter(cfg.Server.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := storage.NewKVBackend(ctx, storage.KVConfig{
		Type:          cfg.Client.Persist.Type,
		Path:          cfg.Client.Persist.Path,
		RedisURL:      cfg.Client.Persist.RedisURL,
		MongoURI:      cfg.Client.Persist.MongoURI,
		MongoDatabase: cfg.Client.Persist.MongoDatabase,
	})
	if err != nil {
		logger.Fatal("Failed to open local storage", "type", cfg.Client.Persist.Type, "error", err)
	}

	client := gateway.NewClient(cfg.Client.APIBaseURL, &http.Client{Timeout: cfg.Client.RequestTimeout})
	engine := app.New(app.Options{
		Remote:  client,
		Persist: storage.NewPersistentStore(kv, cfg.Client.Persist.KeyPrefix),
		Sync: gateway.SyncerConfig{
			RatePerSecond: cfg.Client.WriteRatePerSecond,
			Burst:         cfg.Client.WriteBurst,
			Timeout:       cfg.Client.RequestTimeout,
		},
	})
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := engine.Close(shutdownCtx); err != nil {
			logger.WithError(err).Error("Engine close failed")
		}
	}()

	if !*quiet {
		unsubscribe := engine.Subscribe(func(ev app.Event) {
			fmt.Fprintf(os.Stdout, "  · %s %s %s\n", ev.Collection, ev.Action, ev.ID)
		})
		defer unsubscribe()
	}

	mode := engine.Bootstrap(ctx)
	fmt.Printf("HireHub console, mode: %s (type \"help\")\n", mode)

	if mode == gateway.ModeOffline && cfg.Client.ReconnectInterval > 0 {
		workers.NewReconnectWorker(engine, cfg.Client.ReconnectInterval).Start(ctx)
	}

	repl := &console{ctx: ctx, engine: engine, out: os.Stdout}
	repl.run(os.Stdin)
}

type console struct {
	ctx    context.Context
	engine *app.Engine
	out    io.Writer
}

func (c *console) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		c.exec(line)
		if c.ctx.Err() != nil {
			return
		}
	}
}

func (c *console) exec(line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		c.help()
	case "mode":
		fmt.Fprintln(c.out, c.engine.Mode())
	case "reconnect":
		fmt.Fprintln(c.out, "online:", c.engine.Reconnect(c.ctx))

	case "login":
		if !c.need(args, 3, "login <role> <email> <password>") {
			return
		}
		c.result(c.engine.Login(c.ctx, models.UserRole(args[0]), args[1], args[2]))
	case "register":
		if !c.need(args, 4, "register <role> <email> <password> <name...>") {
			return
		}
		c.result(c.engine.Register(c.ctx, models.RegisterInput{
			Role:     models.UserRole(args[0]),
			Email:    args[1],
			Password: args[2],
			Name:     strings.Join(args[3:], " "),
		}))
	case "verify":
		if !c.need(args, 2, "verify <email> <code>") {
			return
		}
		c.result(c.engine.VerifyOTP(c.ctx, args[0], args[1]))
	case "logout":
		c.engine.Logout()
	case "whoami":
		if u, ok := c.engine.CurrentUser(); ok {
			fmt.Fprintf(c.out, "%s <%s> %s\n", u.Name, u.Email, u.Role)
		} else {
			fmt.Fprintln(c.out, "not signed in")
		}

	case "jobs":
		c.jobs()
	case "post-job":
		// post-job <type> <title> | <company> | <location> | <description>
		if !c.need(args, 2, "post-job <type> <title> | <company> | <location> | <description>") {
			return
		}
		parts := splitPipe(strings.Join(args[1:], " "), 4)
		c.result(c.engine.AddJob(models.JobInput{
			Type:        models.JobType(args[0]),
			Title:       parts[0],
			Company:     parts[1],
			Location:    parts[2],
			Description: parts[3],
		}))
	case "close-job":
		if !c.need(args, 1, "close-job <id>") {
			return
		}
		job, ok := c.engine.JobByID(args[0])
		if !ok {
			fmt.Fprintln(c.out, "job not found")
			return
		}
		c.result(c.engine.UpdateJob(job.ID, models.JobInput{
			Title: job.Title, Company: job.Company, Location: job.Location, Type: job.Type,
			Category: job.Category, Description: job.Description, Requirements: []string(job.Requirements),
			SalaryMin: job.SalaryMin, SalaryMax: job.SalaryMax, Currency: job.Currency,
			Status: models.JobStatusClosed, IsFeatured: job.IsFeatured, IsUrgent: job.IsUrgent,
		}))
	case "delete-job":
		if !c.need(args, 1, "delete-job <id>") {
			return
		}
		c.result(c.engine.DeleteJob(args[0]))
	case "recommend":
		tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SCORE\tID\tTITLE\tWHY")
		for _, m := range c.engine.RecommendedJobs(10) {
			fmt.Fprintf(tw, "%.0f\t%s\t%s\t%s\n", m.Score, m.Job.ID, m.Job.Title, strings.Join(m.Reasons, ", "))
		}
		tw.Flush()
	case "save":
		if !c.need(args, 1, "save <jobId>") {
			return
		}
		fmt.Fprintln(c.out, "saved:", c.engine.ToggleSaveJob(args[0]))

	case "apply":
		if !c.need(args, 1, "apply <jobId> [cover letter...]") {
			return
		}
		c.result(c.engine.SubmitApplication(models.ApplicationInput{JobID: args[0], CoverLetter: strings.Join(args[1:], " ")}))
	case "apps":
		c.applications()
	case "status":
		if !c.need(args, 2, "status <applicationId> <status> [note...]") {
			return
		}
		c.result(c.engine.UpdateApplicationStatus(args[0], models.ApplicationStatus(args[1]),
			models.TransitionExtra{Note: strings.Join(args[2:], " ")}))
	case "withdraw":
		if !c.need(args, 1, "withdraw <applicationId>") {
			return
		}
		c.result(c.engine.WithdrawApplication(args[0]))

	case "notifications":
		for _, n := range c.engine.Notifications() {
			mark := " "
			if !n.IsRead {
				mark = "*"
			}
			fmt.Fprintf(c.out, "%s %s  %s\n", mark, n.Title, n.Message)
		}
	case "read-all":
		fmt.Fprintln(c.out, "marked:", c.engine.MarkAllNotificationsRead())
	case "chat":
		if !c.need(args, 2, "chat <userId> <message...>") {
			return
		}
		c.result(c.engine.SendChatMessage(args[0], strings.Join(args[1:], " ")))
	case "assist":
		if !c.need(args, 1, "assist <prompt...>") {
			return
		}
		text, res := c.engine.Assist(c.ctx, strings.Join(args, " "))
		if !res.Success {
			c.result(res)
			return
		}
		fmt.Fprintln(c.out, text)

	default:
		fmt.Fprintf(c.out, "unknown command %q, type \"help\"\n", cmd)
	}
}

func (c *console) need(args []string, n int, usage string) bool {
	if len(args) < n {
		fmt.Fprintln(c.out, "usage:", usage)
		return false
	}
	return true
}

func (c *console) result(res apperrors.Result) {
	if res.Success {
		if res.ID != "" {
			fmt.Fprintln(c.out, "ok", res.ID)
		} else {
			fmt.Fprintln(c.out, "ok")
		}
		return
	}
	fmt.Fprintf(c.out, "failed: %s", res.Message)
	if res.Hint != apperrors.HintNone {
		fmt.Fprintf(c.out, " (hint: %s)", res.Hint)
	}
	fmt.Fprintln(c.out)
}

func (c *console) jobs() {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tTYPE\tSTATUS")
	for _, j := range c.engine.Jobs() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Company, j.Type, j.Status)
	}
}

func (c *console) applications() {
	u, ok := c.engine.CurrentUser()
	if !ok {
		fmt.Fprintln(c.out, "not signed in")
		return
	}

	var apps []models.Application
	switch u.Role {
	case models.UserRoleSeeker:
		apps = c.engine.ApplicationsForSeeker(u.ID)
	case models.UserRoleEmployer:
		for _, j := range c.engine.Jobs() {
			if j.EmployerID == u.ID {
				apps = append(apps, c.engine.ApplicationsForJob(j.ID)...)
			}
		}
	default:
		apps = c.engine.Applications()
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "ID\tJOB\tSEEKER\tSTATUS\tDATE")
	for _, a := range apps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.JobID, a.SeekerID, a.Status, a.Date.Format(time.DateOnly))
	}
}

func (c *console) help() {
	fmt.Fprint(c.out, `commands:
  mode | reconnect
  login <role> <email> <password>
  register <role> <email> <password> <name...>
  verify <email> <code>
  logout | whoami
  jobs | recommend | post-job | close-job <id> | delete-job <id> | save <jobId>
  apply <jobId> [cover letter...] | apps | status <id> <status> [note...] | withdraw <id>
  notifications | read-all | chat <userId> <message...>
  assist <prompt...>
  quit
`)
}

// splitPipe режет строку по "|" ровно на n частей
func splitPipe(s string, n int) []string {
	parts := strings.SplitN(s, "|", n)
	out := make([]string, n)
	for i := range out {
		if i < len(parts) {
			out[i] = strings.TrimSpace(parts[i])
		}
	}
	return out
}
