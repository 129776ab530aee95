// Command seed prepares a floor deployment: it writes config.yaml with a
// first staff account, hashes passwords, mints development tokens and
// checks floor snapshot files before they are served.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kiwari-pos/floor/internal/auth"
	"github.com/kiwari-pos/floor/internal/config"
	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/store"
)

// configFile mirrors config.yaml.
type configFile struct {
	Port           string                `yaml:"port,omitempty"`
	JWTSecret      string                `yaml:"jwt_secret,omitempty"`
	TaxRate        string                `yaml:"tax_rate,omitempty"`
	SeedFile       string                `yaml:"seed_file,omitempty"`
	AllowedOrigins string                `yaml:"allowed_origins,omitempty"`
	Staff          []config.StaffAccount `yaml:"staff"`
}

var (
	configDir string

	staffID       string
	staffName     string
	staffEmail    string
	staffPassword string
	staffRole     string

	tokenID   string
	tokenName string
	tokenRole string
	tokenTTL  time.Duration
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Prepare configuration and data for the floor server",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "dir", ".", "directory holding config.yaml")

	initCmd.Flags().StringVar(&staffID, "id", "user1", "staff account id")
	initCmd.Flags().StringVar(&staffName, "name", "", "staff full name (env SEED_NAME)")
	initCmd.Flags().StringVar(&staffEmail, "email", "", "staff email (env SEED_EMAIL)")
	initCmd.Flags().StringVar(&staffPassword, "password", "", "staff password (env SEED_PASSWORD)")
	initCmd.Flags().StringVar(&staffRole, "role", string(enum.UserRoleAdmin), "staff role")

	tokenCmd.Flags().StringVar(&tokenID, "id", "user1", "user id carried in the token")
	tokenCmd.Flags().StringVar(&tokenName, "name", "Ibrahim Kadri", "display name carried in the token")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(enum.UserRoleAdmin), "role carried in the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 12*time.Hour, "token lifetime")

	rootCmd.AddCommand(initCmd, hashCmd, tokenCmd, checkCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write config.yaml with a staff account",
	Long: `Create or extend config.yaml in --dir with a staff account. A JWT secret
is generated when the file has none. Accounts whose email is already
present are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email := firstNonEmpty(staffEmail, os.Getenv("SEED_EMAIL"), "admin@kiwari.com")
		name := firstNonEmpty(staffName, os.Getenv("SEED_NAME"), "Ibrahim Kadri")
		password := firstNonEmpty(staffPassword, os.Getenv("SEED_PASSWORD"))
		if password == "" {
			password = "password123"
			log.Println("WARNING: Using default password 'password123'. Change immediately in production!")
		}
		role := enum.UserRole(staffRole)
		if !role.Valid() {
			return fmt.Errorf("invalid role %q", staffRole)
		}

		path := filepath.Join(configDir, "config.yaml")
		cf, err := readConfigFile(path)
		if err != nil {
			return err
		}

		if cf.JWTSecret == "" {
			secret, err := newSecret()
			if err != nil {
				return fmt.Errorf("generate jwt secret: %w", err)
			}
			cf.JWTSecret = secret
			log.Println("Generated a new JWT secret")
		}

		for _, s := range cf.Staff {
			if strings.EqualFold(s.Email, email) {
				log.Printf("Staff '%s' already exists (ID: %s), skipping", email, s.ID)
				return writeConfigFile(path, cf)
			}
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		cf.Staff = append(cf.Staff, config.StaffAccount{
			ID:           staffID,
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         role,
		})
		if err := writeConfigFile(path, cf); err != nil {
			return err
		}

		log.Printf("Created staff account '%s' (ID: %s, role: %s)", email, staffID, role)
		return nil
	},
}

var hashCmd = &cobra.Command{
	Use:   "hash <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token signed with the configured secret",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFrom(configDir)
		if err != nil {
			return err
		}
		role := enum.UserRole(tokenRole)
		if !role.Valid() {
			return fmt.Errorf("invalid role %q", tokenRole)
		}
		tok, err := auth.GenerateDevToken(cfg.JWTSecret, tokenID, tokenName, role, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <seed.json>",
	Short: "Validate a floor snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		seed, err := store.LoadSeed(f, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d tables, %d orders, %d reservations, %d menu items, %d categories, %d customers\n",
			len(seed.Tables), len(seed.Orders), len(seed.Reservations),
			len(seed.MenuItems), len(seed.Categories), len(seed.Customers))
		return nil
	},
}

func readConfigFile(path string) (configFile, error) {
	var cf configFile
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cf, nil
	}
	if err != nil {
		return cf, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return cf, fmt.Errorf("parse %s: %w", path, err)
	}
	return cf, nil
}

func writeConfigFile(path string, cf configFile) error {
	data, err := yaml.Marshal(cf)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func newSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
