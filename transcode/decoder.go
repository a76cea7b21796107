package transcode

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/soniclens/bandscope/analysis"
	"github.com/soniclens/bandscope/logging"
)

// Config holds FFmpeg decoder configuration.
type Config struct {
	FFmpegPath  string        `json:"ffmpeg_path"`
	FFprobePath string        `json:"ffprobe_path"`
	Timeout     time.Duration `json:"timeout"`
	MaxChannels int           `json:"max_channels"`
}

// DefaultConfig returns the decoder defaults, assuming the FFmpeg
// binaries are on PATH.
func DefaultConfig() *Config {
	return &Config{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		Timeout:     60 * time.Second,
		MaxChannels: 8,
	}
}

// Decoder decodes audio files to PCM by shelling out to FFmpeg. The
// stream is decoded at its native sample rate and channel count; no
// resampling or loudness processing is applied, since the analysis
// stage designs its filters for the actual rate.
type Decoder struct {
	config *Config
	logger logging.Logger
}

// FileInfo holds the audio properties ffprobe reports for an input.
type FileInfo struct {
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	Codec      string  `json:"codec"`
	Duration   float64 `json:"duration"`
	Bitrate    int     `json:"bitrate"`
}

func NewDecoder(config *Config) *Decoder {
	if config == nil {
		config = DefaultConfig()
	}
	return &Decoder{
		config: config,
		logger: logging.GetGlobalLogger().WithFields(logging.Fields{"component": "decoder"}),
	}
}

// DecodeFile probes and decodes one audio file into a sample stream.
func (d *Decoder) DecodeFile(ctx context.Context, filename string) (*analysis.SampleStream, error) {
	logger := d.logger.WithFields(logging.Fields{"filename": filename})
	logger.Debug("probing audio file")

	info, err := d.Probe(ctx, filename)
	if err != nil {
		logger.Error(err, "probe failed")
		return nil, err
	}

	logger.Debug("audio properties detected", logging.Fields{
		"sample_rate": info.SampleRate,
		"channels":    info.Channels,
		"codec":       info.Codec,
		"duration":    info.Duration,
	})

	return d.decode(ctx, filename, info)
}

// Probe runs ffprobe on the file and returns the first audio stream's
// properties.
func (d *Decoder) Probe(ctx context.Context, filename string) (*FileInfo, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "a:0",
		filename,
	}

	probeCtx, cancel := d.withTimeout(ctx)
	defer cancel()

	output, err := exec.CommandContext(probeCtx, d.config.FFprobePath, args...).Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffprobe failed for %s: %w, stderr: %s", filename, err, string(exitError.Stderr))
		}
		return nil, fmt.Errorf("ffprobe failed for %s: %w", filename, err)
	}

	return d.parseProbeOutput(output)
}

func (d *Decoder) parseProbeOutput(jsonData []byte) (*FileInfo, error) {
	var probe struct {
		Streams []struct {
			CodecType  string `json:"codec_type"`
			CodecName  string `json:"codec_name"`
			SampleRate string `json:"sample_rate"`
			Channels   int    `json:"channels"`
			Duration   string `json:"duration"`
			BitRate    string `json:"bit_rate"`
		} `json:"streams"`
	}

	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if len(probe.Streams) == 0 {
		return nil, fmt.Errorf("%w: no audio streams found", analysis.ErrUnsupportedInput)
	}

	stream := probe.Streams[0]
	if stream.CodecType != "audio" {
		return nil, fmt.Errorf("%w: stream is not audio: %s", analysis.ErrUnsupportedInput, stream.CodecType)
	}

	sampleRate, err := strconv.Atoi(stream.SampleRate)
	if err != nil || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: invalid sample rate %q", analysis.ErrUnsupportedInput, stream.SampleRate)
	}
	if stream.Channels <= 0 || stream.Channels > d.config.MaxChannels {
		return nil, fmt.Errorf("%w: invalid channel count %d", analysis.ErrUnsupportedInput, stream.Channels)
	}

	duration, err := strconv.ParseFloat(stream.Duration, 64)
	if err != nil {
		duration = 0
	}
	bitrate, err := strconv.Atoi(stream.BitRate)
	if err != nil {
		bitrate = 0
	}

	return &FileInfo{
		SampleRate: sampleRate,
		Channels:   stream.Channels,
		Codec:      stream.CodecName,
		Duration:   duration,
		Bitrate:    bitrate,
	}, nil
}

// decode runs ffmpeg and collects interleaved float64 PCM from stdout.
func (d *Decoder) decode(ctx context.Context, filename string, info *FileInfo) (*analysis.SampleStream, error) {
	args := buildDecodeArgs(filename, info)

	decodeCtx, cancel := d.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(decodeCtx, d.config.FFmpegPath, args...)

	d.logger.Debug("running ffmpeg", logging.Fields{
		"args": strings.Join(args, " "),
	})

	start := time.Now()
	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			d.logger.Error(err, "ffmpeg decode failed", logging.Fields{
				"stderr": string(exitError.Stderr),
			})
			return nil, fmt.Errorf("ffmpeg decode failed for %s: %w, stderr: %s", filename, err, string(exitError.Stderr))
		}
		return nil, fmt.Errorf("ffmpeg decode failed for %s: %w", filename, err)
	}

	samples := bytesToFloat64(output)
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no audio samples decoded from %s", analysis.ErrUnsupportedInput, filename)
	}

	d.logger.Debug("decode completed", logging.Fields{
		"samples":     len(samples),
		"decode_time": time.Since(start).Seconds(),
	})

	return &analysis.SampleStream{
		Samples:    samples,
		SampleRate: info.SampleRate,
		Channels:   info.Channels,
	}, nil
}

// buildDecodeArgs builds the ffmpeg invocation: raw little-endian
// float64 to stdout at the file's own rate and channel layout.
func buildDecodeArgs(filename string, info *FileInfo) []string {
	return []string{
		"-v", "error",
		"-i", filename,
		"-vn",
		"-map", "0:a:0",
		"-f", "f64le",
		"-c:a", "pcm_f64le",
		"-ac", strconv.Itoa(info.Channels),
		"-ar", strconv.Itoa(info.SampleRate),
		"pipe:1",
	}
}

func (d *Decoder) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.config.Timeout > 0 {
		return context.WithTimeout(ctx, d.config.Timeout)
	}
	return context.WithCancel(ctx)
}

// bytesToFloat64 reinterprets raw f64le bytes as samples, dropping any
// trailing partial sample.
func bytesToFloat64(data []byte) []float64 {
	data = data[:len(data)-(len(data)%8)]
	if len(data) == 0 {
		return nil
	}

	samples := make([]float64, len(data)/8)
	for i := range samples {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}
	return samples
}

// CheckAvailability verifies the configured ffmpeg and ffprobe
// binaries can be executed.
func (d *Decoder) CheckAvailability() error {
	if err := exec.Command(d.config.FFmpegPath, "-version").Run(); err != nil {
		return fmt.Errorf("ffmpeg not found at %s: %w", d.config.FFmpegPath, err)
	}
	if err := exec.Command(d.config.FFprobePath, "-version").Run(); err != nil {
		return fmt.Errorf("ffprobe not found at %s: %w", d.config.FFprobePath, err)
	}
	return nil
}
