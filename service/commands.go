package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"blog/app/repositories"
	"blog/configs"
)

// HandleCommand runs a blog subcommand and returns the process exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		PrintHelp()
		return 1
	}

	cfg := configs.Load()
	switch cmd := args[0]; cmd {
	case "serve":
		return serve(cfg)
	case "clean":
		return clean(cfg)
	case "init":
		return initDb(cfg)
	case "backup":
		return backup(cfg)
	case "restore":
		if len(args) < 2 {
			fmt.Println("Error: backup file path required for restore")
			return 1
		}
		return restore(cfg, args[1])
	case "help":
		PrintHelp()
		return 0
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		PrintHelp()
		return 1
	}
}

// PrintHelp prints the command overview.
func PrintHelp() {
	helpText := `Usage: blog <command>

Commands:
  serve                           Run the blog web server
  init                            Create the schema and the welcome post
  clean                           Delete the local database
  backup                          Create a backup of the database
  restore <file>                  Restore the database from a backup
  version                         Show version information
  help                            Display this help message

Configuration is read from BLOG_* environment variables (BLOG_ADDR, BLOG_STORAGE, BLOG_DB_PATH, ...).
`
	fmt.Println(helpText)
}

func serve(cfg *configs.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RunAppServer(ctx, cfg); err != nil {
		fmt.Printf("Server error: %v\n", err)
		return 1
	}
	return 0
}

// clean removes the local database.
func clean(cfg *configs.Config) int {
	path := cfg.DataPath()
	if path == "" {
		fmt.Printf("clean is not supported for %s storage\n", cfg.Storage)
		return 1
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return 0
	}

	if !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Println("Operation cancelled")
		return 0
	}

	if err := os.RemoveAll(path); err != nil {
		fmt.Printf("Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Println("Database cleaned successfully")
	return 0
}

// initDb creates the schema and seeds the welcome post.
func initDb(cfg *configs.Config) int {
	if path := cfg.DataPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
			return 0
		}
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}
	fmt.Println("Database initialized successfully")
	return 0
}

// backup writes a timestamped backup into the backup directory.
func backup(cfg *configs.Config) int {
	path := cfg.DataPath()
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println("No database exists to backup")
			return 1
		}
	}

	if err := os.MkdirAll(cfg.BackupDir, 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	ext := ".db"
	if cfg.Storage == repositories.DriverBadger {
		ext = ".bak"
	}
	backupFile := filepath.Join(cfg.BackupDir, fmt.Sprintf("backup_%s%s", time.Now().UTC().Format("20060102T150405.000000000"), ext))

	if err := store.Backup(ctx, backupFile); err != nil {
		if errors.Is(err, repositories.ErrBackupUnsupported) {
			fmt.Printf("backup is not supported for %s storage\n", cfg.Storage)
		} else {
			fmt.Printf("Failed to backup database: %v\n", err)
		}
		return 1
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore replaces the local database with the contents of backupFile.
func restore(cfg *configs.Config, backupFile string) int {
	path := cfg.DataPath()
	if path == "" {
		fmt.Printf("restore is not supported for %s storage\n", cfg.Storage)
		return 1
	}

	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(path); err == nil {
		if !confirm("Existing database found. Do you want to replace it?") {
			fmt.Println("Operation cancelled")
			return 0
		}
		if err := os.RemoveAll(path); err != nil {
			fmt.Printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	if err := restoreFrom(cfg, backupFile); err != nil {
		os.RemoveAll(path)
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}
	fmt.Println("Database restored successfully")
	return 0
}

func restoreFrom(cfg *configs.Config, backupFile string) error {
	ctx := context.Background()
	if cfg.Storage == repositories.DriverSQLite {
		if err := copyFile(backupFile, cfg.DBPath); err != nil {
			return err
		}
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if bs, ok := store.(*repositories.BadgerStore); ok {
		if err := bs.Load(backupFile); err != nil {
			return err
		}
	}
	// Init fails when the restored file is not a usable database.
	return store.Init(ctx)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
