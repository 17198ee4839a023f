package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// minWavBytes guards against silently broken conversions; anything smaller
// than this is not a usable recording.
const minWavBytes = 1000

// ConvertToWav transcodes an uploaded recording to 16 kHz mono WAV, the
// format the transcription API handles best. Returns the output path.
func ConvertToWav(ctx context.Context, inputPath, outDir string) (string, error) {
	out := filepath.Join(outDir, filepath.Base(inputPath)+".wav")

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", inputPath,
		"-ar", "16000", "-ac", "1", "-b:a", "16k",
		out,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg: %w: %s", err, stderr.String())
	}

	stat, err := os.Stat(out)
	if err != nil {
		return "", fmt.Errorf("converted file missing: %w", err)
	}
	if stat.Size() < minWavBytes {
		return "", fmt.Errorf("converted file too small (%d bytes), conversion likely failed", stat.Size())
	}
	return out, nil
}
