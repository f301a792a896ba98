package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/memoria/internal/codec"
	"github.com/lazypower/memoria/internal/gate"
	"github.com/lazypower/memoria/internal/memory"
	"github.com/lazypower/memoria/internal/share"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// --- encode command ---

var (
	encTitle     string
	encMessage   string
	encTheme     string
	encImage     string
	encMusic     string
	encPrivate   bool
	encPassword  string
	encAutoPlay  bool
	encBase      string
	encTokenOnly bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Create a memory and print its share link",
	Long: "Build a memory from flags and print the share URL. --image and --music take " +
		"file paths (embedded as data URIs); --music also accepts an http(s) URL. " +
		"Use --message - to read the message from stdin.",
	RunE: runEncode,
}

func init() {
	f := encodeCmd.Flags()
	f.StringVarP(&encTitle, "title", "t", "", "memory title (required)")
	f.StringVarP(&encMessage, "message", "m", "", "memory message, or - for stdin (required)")
	f.StringVar(&encTheme, "theme", string(memory.ThemeRomantic), "romantic, friendly, elegant or modern")
	f.StringVar(&encImage, "image", "", "image file to embed")
	f.StringVar(&encMusic, "music", "", "audio file to embed, or an http(s) URL")
	f.BoolVar(&encPrivate, "private", false, "require a password to view")
	f.StringVar(&encPassword, "password", "", "password for a private memory")
	f.BoolVar(&encAutoPlay, "autoplay", false, "start the music when the page opens")
	f.StringVar(&encBase, "base", "", "base URL of the viewer (default: server.public_url)")
	f.BoolVar(&encTokenOnly, "token", false, "print only the token")

	unlockCmd.Flags().StringVarP(&unlockPassword, "password", "p", "", "password to try")
	unlockCmd.Flags().BoolVar(&unlockJSON, "json", false, "print the memory as JSON")
	openCmd.Flags().BoolVar(&openJSON, "json", false, "print the memory as JSON")
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	message := encMessage
	if message == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		message = strings.TrimRight(string(data), "\n")
	}

	draft := memory.Draft{
		Title:         encTitle,
		Message:       message,
		Theme:         encTheme,
		IsPrivate:     encPrivate,
		Password:      encPassword,
		AutoPlayMusic: encAutoPlay,
	}
	if encImage != "" {
		if draft.Image, err = embedFile(encImage); err != nil {
			return err
		}
	}
	if encMusic != "" {
		if strings.HasPrefix(encMusic, "http://") || strings.HasPrefix(encMusic, "https://") {
			draft.Music = encMusic
		} else if draft.Music, err = embedFile(encMusic); err != nil {
			return err
		}
	}

	rec, err := memory.NewRecord(draft, time.Now())
	if err != nil {
		return err
	}

	base := encBase
	if base == "" {
		base = cfg.Server.PublicURL
	}
	link, err := share.BuildURL(base, rec, share.Options{MaxTokenLength: cfg.Share.MaxTokenLength})
	if err != nil {
		if errors.Is(err, share.ErrTokenTooLong) {
			return errors.New(share.PublicMessage(err))
		}
		return fmt.Errorf("encode memory: %w", err)
	}

	out := cmd.OutOrStdout()
	if encTokenOnly {
		_, token, _ := strings.Cut(link, "#")
		fmt.Fprintln(out, token)
		return nil
	}
	fmt.Fprintln(out, link)
	return nil
}

// embedFile reads path and returns it as a data URI with a sniffed type.
func embedFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read media: %w", err)
	}
	d, err := memory.MediaFromBytes(data)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// --- open command ---

var openJSON bool

var openCmd = &cobra.Command{
	Use:   "open <url|token>",
	Short: "Decode a share link and show the memory",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	rec, err := loadLink(args[0])
	if err != nil {
		return err
	}

	g := gate.New(rec)
	content, ok := g.Content()
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "This memory is private. Open it with: memoria unlock --password <password> <url>")
		return nil
	}
	return printMemory(cmd.OutOrStdout(), content, openJSON)
}

// --- unlock command ---

var (
	unlockPassword string
	unlockJSON     bool
)

var unlockCmd = &cobra.Command{
	Use:   "unlock <url|token>",
	Short: "Open a private memory with its password",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnlock,
}

func runUnlock(cmd *cobra.Command, args []string) error {
	rec, err := loadLink(args[0])
	if err != nil {
		return err
	}

	g := gate.New(rec)
	if g.Attempt(unlockPassword) != gate.Granted {
		return errors.New("incorrect password, try again")
	}
	content, _ := g.Content()
	return printMemory(cmd.OutOrStdout(), content, unlockJSON)
}

// loadLink decodes a URL or bare token. Codec details go to stderr only
// when MEMORIA_DEBUG is set.
func loadLink(arg string) (memory.Record, error) {
	rec, err := share.LoadURL(arg)
	if err != nil {
		if os.Getenv("MEMORIA_DEBUG") != "" {
			fmt.Fprintf(os.Stderr, "debug: %s: %v\n", codec.KindOf(err), err)
		}
		return memory.Record{}, errors.New(share.PublicMessage(err))
	}
	return rec, nil
}

func printMemory(w io.Writer, r memory.Record, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Fprintf(w, "# %s\n", r.Title)
	fmt.Fprintf(w, "(%s, %s)\n\n", r.Theme, r.Created().Format("2006-01-02 15:04"))
	fmt.Fprintln(w, r.Message)
	if r.Image != nil {
		fmt.Fprintf(w, "\nimage: %s\n", describeMedia(*r.Image))
	}
	if r.Music != nil {
		autoplay := ""
		if r.AutoPlayMusic {
			autoplay = " (autoplay)"
		}
		fmt.Fprintf(w, "music: %s%s\n", describeMedia(*r.Music), autoplay)
	}
	return nil
}

func describeMedia(ref string) string {
	d, err := memory.ParseDataURI(ref)
	if err != nil {
		return ref
	}
	return fmt.Sprintf("%s, %d bytes", d.MIME, len(d.Data))
}
