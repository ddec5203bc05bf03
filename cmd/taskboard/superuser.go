package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/service"
	"github.com/taskboard/taskboard/internal/infrastructure/config"
	mongodb "github.com/taskboard/taskboard/internal/infrastructure/db/mongo"
	redisdb "github.com/taskboard/taskboard/internal/infrastructure/db/redis"
	"github.com/taskboard/taskboard/pkg/logger"
)

type superuserFlags struct {
	name     string
	email    string
	password string
	yes      bool
}

func superuserCmd() *cobra.Command {
	var f superuserFlags
	cmd := &cobra.Command{
		Use:   "create-superuser",
		Short: "Create a SUPERUSER account or promote an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			return createSuperuser(cmd.Context(), cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.name, "name", "", "display name of the new account (required when creating)")
	cmd.Flags().StringVar(&f.email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&f.password, "password", "", "password; prompted for when empty")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "promote an existing account without asking")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func createSuperuser(ctx context.Context, cmd *cobra.Command, f superuserFlags) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.ForEnv(cfg.Env, cfg.LogLevel))

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	admin := service.NewAdminService(
		users,
		mongodb.NewTodoRepository(db),
		mongodb.NewSettingsRepository(db),
		redisdb.NewSessionStore(rdb),
		mongodb.NewAuditRepository(db),
		mongodb.NewStatsRepository(db),
		log,
	)

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	promote := false
	if existing, err := users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(f.email))); err == nil {
		if existing.Role == domain.RoleSuperuser {
			fmt.Fprintf(out, "%s is already a superuser\n", existing.Email)
			return nil
		}
		if !f.yes {
			ok, err := confirm(in, out, fmt.Sprintf("%s exists with role %s. Promote to SUPERUSER?", existing.Email, existing.Role.DisplayName()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "aborted")
				return nil
			}
		}
		promote = true
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	password := f.password
	if !promote {
		if strings.TrimSpace(f.name) == "" {
			return errors.New("--name is required when creating an account")
		}
		if password == "" {
			password, err = readPassword(in, out)
		} else {
			password, err = validPassword(password)
		}
		if err != nil {
			return err
		}
	}

	user, err := admin.ProvisionSuperuser(ctx, f.name, f.email, password, promote)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "superuser ready: %s (%s)\n", user.Email, user.ID)
	return nil
}

// confirm asks a y/N question. Anything but y or yes is a no.
func confirm(in *bufio.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// readPassword prompts twice without echo on a terminal, and reads a single
// line otherwise.
func readPassword(in *bufio.Reader, out io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return validPassword(strings.TrimRight(line, "\r\n"))
	}

	fmt.Fprint(out, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	fmt.Fprint(out, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return validPassword(string(first))
}

func validPassword(pw string) (string, error) {
	if len(pw) < 6 {
		return "", errors.New("password must be at least 6 characters")
	}
	return pw, nil
}
