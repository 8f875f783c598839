package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clamsproject/app-datimex-extraction/internal/adapters/driven/storage/memory"
	"github.com/clamsproject/app-datimex-extraction/internal/annotators"
	"github.com/clamsproject/app-datimex-extraction/internal/core/services"
	"github.com/clamsproject/app-datimex-extraction/internal/logger"
	"github.com/clamsproject/app-datimex-extraction/internal/normalisers/html"
	"github.com/clamsproject/app-datimex-extraction/internal/normalisers/markdown"
	"github.com/clamsproject/app-datimex-extraction/internal/normalisers/plaintext"
)

// testEnv exposes the stores behind the services wired by setupTestServices.
type testEnv struct {
	store  *memory.AnnotationStore
	config *memory.ConfigStore
}

// setupTestServices wires in-memory services and returns a cleanup function
// that restores the previous ones.
func setupTestServices(t *testing.T) (*testEnv, func()) {
	t.Helper()

	oldExtraction, oldAnnotations, oldSettings, oldLogger := extractionService, annotationService, settingsService, appLogger
	resetFlags()

	log := logger.Discard()
	r := annotators.NewRegistry()
	annotators.RegisterDefaults(r, log)

	env := &testEnv{
		store:  memory.NewAnnotationStore(),
		config: memory.NewConfigStore(nil),
	}
	SetServices(Services{
		Extraction: services.NewExtractionService(
			annotators.NewFactory(r),
			services.NewNormaliserRegistry(plaintext.New(), markdown.New(), html.New()),
			services.WithLogger(log),
		),
		Annotations: services.NewAnnotationService(env.store),
		Settings:    services.NewSettingsService(env.config),
		Logger:      log,
	})

	return env, func() {
		extractionService, annotationService, settingsService, appLogger = oldExtraction, oldAnnotations, oldSettings, oldLogger
		resetFlags()
	}
}

// resetFlags restores flag variables, which outlive a single Execute.
func resetFlags() {
	verbose = false
	extractPattern, extractText, extractAfter, extractBefore = "", "", "", ""
	extractJSON, extractSave = false, false
	annotateIn, annotateOut, annotatePattern, annotatePretty = "-", "-", "", false
	annotationsDocument, annotationsSince, annotationsLimit, annotationsJSON = "", "", 0, false
	metadataPretty = false
	servePort, serveProduction = 0, false
	watchPattern, watchSave = "", false
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := run(t, stdin, args...)
	require.NoError(t, err)
	return out
}
