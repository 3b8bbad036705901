// Command fittrack is a local fitness tracking client: body weight, workout
// sessions, plan templates and meal plans, per account, sealed at rest.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/fittrack/internal/errs"
	"github.com/and161185/fittrack/internal/limiter"
	"github.com/and161185/fittrack/internal/migrate"
	"github.com/and161185/fittrack/internal/model"
	"github.com/and161185/fittrack/internal/service"
	"github.com/and161185/fittrack/internal/storage"
	"github.com/and161185/fittrack/internal/storage/bolt"
	"github.com/and161185/fittrack/internal/storage/postgres"
)

// ---- data locations ----

func dataDir() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return filepath.Join(v, "fittrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "fittrack")
}

// runDir holds the non-remembered session slot. XDG_RUNTIME_DIR is tmpfs,
// so the slot dies with the login session.
func runDir() string {
	if v := os.Getenv("XDG_RUNTIME_DIR"); v != "" {
		return filepath.Join(v, "fittrack")
	}
	return filepath.Join(os.TempDir(), "fittrack")
}

// ---- app wiring ----

type app struct {
	accounts *service.Accounts
	store    storage.Store
	log      *zap.Logger
	closers  []func()
}

func (a *app) close() {
	for _, c := range a.closers {
		c()
	}
}

func openApp(ctx context.Context, dsn string, log *zap.Logger) (*app, error) {
	a := &app{log: log}

	if dsn != "" {
		if err := migrate.Up(ctx, dsn); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		db, err := postgres.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.store = postgres.NewStore(db)
	} else {
		if err := os.MkdirAll(dataDir(), 0o700); err != nil {
			return nil, err
		}
		b, err := bolt.Open(filepath.Join(dataDir(), "fittrack.db"))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = b.Close() })
		a.store = b
	}

	if err := os.MkdirAll(runDir(), 0o700); err != nil {
		return nil, err
	}
	eph, err := bolt.Open(filepath.Join(runDir(), "session.db"))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = eph.Close() })

	signKey, err := service.LoadOrCreateSignKey(ctx, a.store)
	if err != nil {
		return nil, err
	}
	lim := limiter.NewMemory(15*time.Minute, 5, 15*time.Minute)
	a.accounts = service.NewAccounts(a.store, eph, lim, signKey, log)
	return a, nil
}

// ledger resolves the active session and loads its working set.
func (a *app) ledger(ctx context.Context) (*service.Ledger, error) {
	sess, err := a.accounts.Active(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrNoSession) {
			return nil, errors.New("not logged in (run: fittrack login)")
		}
		return nil, err
	}
	return service.OpenLedger(ctx, a.store, sess, a.log)
}

func usage() {
	fmt.Fprintf(os.Stderr, `fittrack
Usage:
  fittrack [-dsn postgres://...] [-v] <cmd> [args]

Accounts:
  register        -u <email> -p <password> [-remember]
  login           -u <email> -p <password> [-remember]
  logout
  whoami

Weight:
  weight-add      -kg <value> [-date YYYY-MM-DD] [-notes text]
  weight-rm       -id <id>
  weight-history
  weight-chart    [-days N]
  weight-stats

Workouts:
  gym             -name <session> [-date YYYY-MM-DD] [-notes text] -ex <json|->
  run             -min <duration> -pace <M:SS> [-date ...] [-name ...] [-notes ...]
  rest            [-date ...] [-name ...] [-notes ...]
  workouts
  workout-rm      -id <id>
  prs

Plans:
  plan-save       [-id <id>] -name <name> [-desc text] -ex <json|->
  plans
  plan-rm         -id <id>
  plan-use        -id <id>                 (prints exercises for gym -ex)

Meals:
  meal-add        -name <name> [-date YYYY-MM-DD] [-foods <json|->]
  meals
  meal-rm         -id <id>

Other:
  dashboard
  version
`)
	os.Exit(2)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	dsn := flag.String("dsn", "", "postgres DSN (default: local bolt file)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	if cmd == "version" {
		fmt.Printf("fittrack %s (%s)\n", version, buildDate)
		return
	}

	log := zap.NewNop()
	if *verbose {
		log, _ = zap.NewDevelopment()
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := openApp(ctx, *dsn, log)
	if err != nil {
		fail(err)
	}
	defer a.close()

	today := model.DayOf(time.Now()).String()

	switch cmd {

	case "register", "login":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		u := fs.String("u", "", "email")
		p := fs.String("p", "", "password")
		remember := fs.Bool("remember", false, "keep the session across restarts")
		_ = fs.Parse(args)
		if *u == "" || *p == "" {
			fmt.Fprintln(os.Stderr, "need -u and -p")
			os.Exit(1)
		}
		var sess model.Session
		if cmd == "register" {
			sess, err = a.accounts.Register(ctx, *u, *p, *remember)
		} else {
			sess, err = a.accounts.Login(ctx, *u, *p, *remember)
		}
		if err != nil {
			fail(err)
		}
		fmt.Println("ok:", sess.Email)

	case "logout":
		if err := a.accounts.Logout(ctx); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "whoami":
		sess, err := a.accounts.Active(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Println(sess.Email)

	case "weight-add":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		date := fs.String("date", today, "date YYYY-MM-DD")
		kg := fs.Float64("kg", 0, "weight in kilograms")
		notes := fs.String("notes", "", "notes")
		_ = fs.Parse(args)

		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		w, err := l.UpsertWeight(ctx, model.Day(*date), *kg, *notes)
		if err != nil {
			fail(err)
		}
		printJSON(w)

	case "weight-rm":
		id := parseID(cmd, args)
		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		if err := l.DeleteWeight(ctx, id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "weight-history":
		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Print(renderHistory(l.History()))

	case "weight-chart":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		days := fs.Int("days", 0, "trailing day window (0 = all)")
		_ = fs.Parse(args)

		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		s := l.RangeSeries(*days)
		if !s.Chartable() {
			fmt.Println("not enough data")
			return
		}
		printJSON(s)

	case "weight-stats":
		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		st, ok := l.Stats()
		if !ok {
			fmt.Println("no measurements yet")
			return
		}
		fmt.Print(renderStats(st))

	case "gym":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		date := fs.String("date", today, "date YYYY-MM-DD")
		name := fs.String("name", "", "session name")
		notes := fs.String("notes", "", "notes")
		exFile := fs.String("ex", "", "exercises JSON ('-'=stdin)")
		_ = fs.Parse(args)
		if *exFile == "" {
			fmt.Fprintln(os.Stderr, "need -ex")
			os.Exit(1)
		}
		raw, err := readAll(*exFile)
		if err != nil {
			fail(err)
		}
		exs, err := parseExercises(raw)
		if err != nil {
			fail(err)
		}

		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		s, err := l.CreateGymSession(ctx, model.Day(*date), *name, *notes, exs)
		if err != nil {
			fail(err)
		}
		printJSON(s)

	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		date := fs.String("date", today, "date YYYY-MM-DD")
		name := fs.String("name", "", "session name")
		notes := fs.String("notes", "", "notes")
		mins := fs.Float64("min", 0, "duration in minutes")
		pace := fs.String("pace", "", "pace min/km, e.g. 5:30")
		_ = fs.Parse(args)

		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		s, err := l.CreateRunSession(ctx, model.Day(*date), *name, *notes, *mins, *pace)
		if err != nil {
			fail(err)
		}
		printJSON(s)

	case "rest":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		date := fs.String("date", today, "date YYYY-MM-DD")
		name := fs.String("name", "", "session name")
		notes := fs.String("notes", "", "notes")
		_ = fs.Parse(args)

		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		s, err := l.CreateRestSession(ctx, model.Day(*date), *name, *notes)
		if err != nil {
			fail(err)
		}
		printJSON(s)

	case "workouts":
		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Print(renderSessions(l.Sessions(), l.PersonalRecords()))

	case "workout-rm":
		id := parseID(cmd, args)
		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		if err := l.DeleteSession(ctx, id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "prs":
		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(l.PersonalRecords())

	case "plan-save":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "plan id (empty = create)")
		name := fs.String("name", "", "plan name")
		desc := fs.String("desc", "", "description")
		exFile := fs.String("ex", "", "exercises JSON ('-'=stdin)")
		_ = fs.Parse(args)
		if *exFile == "" {
			fmt.Fprintln(os.Stderr, "need -ex")
			os.Exit(1)
		}
		raw, err := readAll(*exFile)
		if err != nil {
			fail(err)
		}
		exs, err := parseExercises(raw)
		if err != nil {
			fail(err)
		}

		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		p, err := l.SavePlan(ctx, *id, *name, *desc, exs)
		if err != nil {
			fail(err)
		}
		printJSON(p)

	case "plans":
		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(l.Plans())

	case "plan-rm":
		id := parseID(cmd, args)
		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		if err := l.DeletePlan(ctx, id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "plan-use":
		id := parseID(cmd, args)
		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		name, exs, err := l.Instantiate(id)
		if err != nil {
			fail(err)
		}
		fmt.Fprintln(os.Stderr, "plan:", name)
		printJSON(exs)

	case "meal-add":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		date := fs.String("date", today, "date YYYY-MM-DD")
		name := fs.String("name", "", "plan name")
		foodsFile := fs.String("foods", "", "foods JSON ('-'=stdin, optional)")
		_ = fs.Parse(args)

		var foods []model.Food
		if *foodsFile != "" {
			raw, err := readAll(*foodsFile)
			if err != nil {
				fail(err)
			}
			foods, err = parseFoods(raw)
			if err != nil {
				fail(err)
			}
		}

		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		p, err := l.AddMealPlan(ctx, model.Day(*date), *name, foods)
		if err != nil {
			fail(err)
		}
		printJSON(p)

	case "meals":
		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Print(renderMeals(l.MealPlans()))

	case "meal-rm":
		id := parseID(cmd, args)
		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		if err := l.DeleteMealPlan(ctx, id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "dashboard":
		l, err := a.ledger(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Print(renderSummary(l.Summary()))

	default:
		usage()
	}
}

// parseID handles the common single -id flag set.
func parseID(cmd string, args []string) string {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	id := fs.String("id", "", "record id")
	_ = fs.Parse(args)
	if *id == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}
	return *id
}
