package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sketchdoc/sketchdoc/pkg/drawio"
	"github.com/sketchdoc/sketchdoc/pkg/snapshot"
)

// newSnapshotsCmd creates the snapshot management command.
func newSnapshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Manage stored document revisions",
	}

	cmd.AddCommand(newSnapshotsListCmd())
	cmd.AddCommand(newSnapshotsShowCmd())
	cmd.AddCommand(newSnapshotsTakeCmd())
	cmd.AddCommand(newSnapshotsRestoreCmd())
	cmd.AddCommand(newSnapshotsPruneCmd())

	return cmd
}

// openSnapshotStore builds the store selected by the configuration. Remote
// backends ping the server on connect, which can block for a while when the
// server is unreachable, so those get a spinner.
func openSnapshotStore(ctx context.Context, cfg Config) (snapshot.Store, error) {
	switch cfg.Snapshot.Backend {
	case "", "file":
		return snapshot.NewFileStore(cfg.Snapshot.Dir)
	case "redis":
		s := newSpinner(ctx, fmt.Sprintf("Connecting to redis at %s...", cfg.Snapshot.Addr))
		s.Start()
		defer s.Stop()
		return snapshot.NewRedisStore(ctx, snapshot.RedisConfig{Addr: cfg.Snapshot.Addr})
	case "mongo":
		s := newSpinner(ctx, "Connecting to mongodb...")
		s.Start()
		defer s.Stop()
		return snapshot.NewMongoStore(ctx, snapshot.MongoConfig{URI: cfg.Snapshot.URI})
	default:
		return nil, fmt.Errorf("unknown snapshot backend: %s (must be 'file', 'redis', or 'mongo')", cfg.Snapshot.Backend)
	}
}

// newSnapshotsListCmd creates the "snapshots list" subcommand.
func newSnapshotsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotsList(cmd.Context())
		},
	}
}

func runSnapshotsList(ctx context.Context) error {
	store, err := openSnapshotStore(ctx, configFromContext(ctx))
	if err != nil {
		return err
	}
	defer store.Close()

	infos, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		printInfo("No snapshots stored")
		return nil
	}

	nameStyle := lipgloss.NewStyle().Foreground(colorWhite).Width(32)
	diagramStyle := lipgloss.NewStyle().Foreground(colorGray).Width(20)
	sizeStyle := lipgloss.NewStyle().Foreground(colorDim).Width(10)
	for _, info := range infos {
		fmt.Println(nameStyle.Render(info.Name) +
			diagramStyle.Render(info.Diagram) +
			sizeStyle.Render(formatSize(info.Size)) +
			StyleDim.Render(formatAge(info.CreatedAt)))
	}
	printNewline()
	printDetail("%d snapshot(s)", len(infos))
	return nil
}

// snapshotsShowOpts holds the flags for "snapshots show".
type snapshotsShowOpts struct {
	output string
	dump   bool
}

// newSnapshotsShowCmd creates the "snapshots show" subcommand.
func newSnapshotsShowCmd() *cobra.Command {
	var opts snapshotsShowOpts

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show one snapshot's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotsShow(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dump, "dump", false, "write the stored document bytes instead of details")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "dump destination (default: stdout)")

	return cmd
}

func runSnapshotsShow(ctx context.Context, name string, opts *snapshotsShowOpts) error {
	store, err := openSnapshotStore(ctx, configFromContext(ctx))
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Get(ctx, name)
	if err != nil {
		return err
	}

	if opts.dump {
		out, err := openOutput(opts.output)
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = out.Write(snap.Data)
		return err
	}

	printKeyValue("Name", snap.Name)
	printKeyValue("Diagram", snap.Diagram)
	printKeyValue("Created", snap.CreatedAt.Format(time.RFC3339))
	printKeyValue("Size", formatSize(snap.Size))

	diagram, err := drawio.Read(bytes.NewReader(snap.Data))
	if err != nil {
		printWarning("stored document does not parse: %v", err)
		return nil
	}
	printKeyValue("Pages", fmt.Sprintf("%d", diagram.PageCount()))
	return nil
}

// snapshotsTakeOpts holds the flags for "snapshots take".
type snapshotsTakeOpts struct {
	name string
}

// newSnapshotsTakeCmd creates the "snapshots take" subcommand.
func newSnapshotsTakeCmd() *cobra.Command {
	var opts snapshotsTakeOpts

	cmd := &cobra.Command{
		Use:   "take [file]",
		Short: "Store a snapshot of a document file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotsTake(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "snapshot name (default: file name with a timestamp)")

	return cmd
}

func runSnapshotsTake(ctx context.Context, path string, opts *snapshotsTakeOpts) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Parse before storing so broken files never enter the store.
	diagram, err := drawio.Read(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	name := opts.name
	if name == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		name = fmt.Sprintf("%s-%s", base, time.Now().UTC().Format("20060102-150405"))
	}

	store, err := openSnapshotStore(ctx, configFromContext(ctx))
	if err != nil {
		return err
	}
	defer store.Close()

	snap := snapshot.New(name, diagram.Name(), data)
	if err := store.Put(ctx, snap); err != nil {
		return err
	}

	printSuccess("Stored %s", StyleValue.Render(name))
	printDetail("%s, %d page(s)", formatSize(snap.Size), diagram.PageCount())
	return nil
}

// snapshotsRestoreOpts holds the flags for "snapshots restore".
type snapshotsRestoreOpts struct {
	force bool
}

// newSnapshotsRestoreCmd creates the "snapshots restore" subcommand.
func newSnapshotsRestoreCmd() *cobra.Command {
	var opts snapshotsRestoreOpts

	cmd := &cobra.Command{
		Use:   "restore [name] [file]",
		Short: "Write a stored snapshot back to a document file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotsRestore(cmd.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing file")

	return cmd
}

func runSnapshotsRestore(ctx context.Context, name, path string, opts *snapshotsRestoreOpts) error {
	if !opts.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	store, err := openSnapshotStore(ctx, configFromContext(ctx))
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Get(ctx, name)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, snap.Data, 0o644); err != nil {
		return err
	}

	printSuccess("Restored %s", StyleValue.Render(path))
	printDetail("snapshot %s from %s", name, snap.CreatedAt.Format(time.RFC3339))
	return nil
}

// snapshotsPruneOpts holds the flags for "snapshots prune".
type snapshotsPruneOpts struct {
	keep int
}

// newSnapshotsPruneCmd creates the "snapshots prune" subcommand.
func newSnapshotsPruneCmd() *cobra.Command {
	var opts snapshotsPruneOpts

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotsPrune(cmd.Context(), &opts)
		},
	}

	cmd.Flags().IntVar(&opts.keep, "keep", 0, "snapshots to retain (default from config)")

	return cmd
}

func runSnapshotsPrune(ctx context.Context, opts *snapshotsPruneOpts) error {
	cfg := configFromContext(ctx)

	keep := opts.keep
	if keep <= 0 {
		keep = cfg.Snapshot.Keep
	}

	store, err := openSnapshotStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := snapshot.Prune(ctx, store, keep)
	if err != nil {
		return err
	}

	if removed == 0 {
		printInfo("Nothing to prune (%d or fewer snapshots stored)", keep)
		return nil
	}
	printSuccess("Removed %d snapshot(s), kept the newest %d", removed, keep)
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// formatSize renders a byte count for humans.
func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// formatAge renders how long ago t was.
func formatAge(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
