// Package renderer shells out to the Remotion CLI to render karaoke-style
// lyric videos.
package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"melodia/internal/shared/config"
	"melodia/internal/shared/logger"
)

// RenderProps is the input payload passed to the video composition.
type RenderProps struct {
	Title     string      `json:"title"`
	AudioURL  string      `json:"audioUrl"`
	Lines     interface{} `json:"lines"`
	ThemeName string      `json:"themeName,omitempty"`
}

// Renderer produces a video file and returns its public URL path.
type Renderer interface {
	Render(ctx context.Context, jobSID, composition string, props RenderProps) (string, error)
}

// RemotionRenderer implements Renderer by invoking `npx remotion render`
// inside the configured project directory.
type RemotionRenderer struct {
	projectDir string
	outputDir  string
	publicPath string
	binary     string
	logger     logger.Interface
}

func NewRemotionRenderer(cfg *config.RendererConfig, logger logger.Interface) *RemotionRenderer {
	binary := cfg.BinaryPath
	if binary == "" {
		binary = "npx"
	}

	return &RemotionRenderer{
		projectDir: cfg.ProjectDir,
		outputDir:  cfg.OutputDir,
		publicPath: cfg.PublicPath,
		binary:     binary,
		logger:     logger,
	}
}

func (r *RemotionRenderer) Render(ctx context.Context, jobSID, composition string, props RenderProps) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create render output directory: %w", err)
	}

	propsJSON, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("failed to marshal render props: %w", err)
	}

	outputFile := filepath.Join(r.outputDir, jobSID+".mp4")

	cmd := exec.CommandContext(ctx, r.binary, "remotion", "render",
		composition,
		outputFile,
		"--props", string(propsJSON),
	)
	cmd.Dir = r.projectDir

	r.logger.Infow("starting video render", "job", jobSID, "composition", composition)

	output, err := cmd.CombinedOutput()
	if err != nil {
		r.logger.Errorw("video render failed",
			"job", jobSID, "error", err, "output", string(output))
		return "", fmt.Errorf("render failed: %w", err)
	}

	r.logger.Infow("video render complete", "job", jobSID, "file", outputFile)
	return r.publicPath + "/" + jobSID + ".mp4", nil
}
