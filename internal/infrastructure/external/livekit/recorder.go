package livekit

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	livekit "github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
)

// Recorder drives LiveKit room composite egress
type Recorder interface {
	StartRoomRecording(ctx context.Context, req RecordingRequest) (string, error)
	StopRecording(ctx context.Context, egressID string) (*EgressResult, error)
}

// RecordingRequest describes one room capture
type RecordingRequest struct {
	RoomName string
	Filepath string
	Format   string // mp4, webm, ogg
	Quality  string // low, medium, high
}

// S3Output is where egress uploads finished files (MinIO works with ForcePathStyle)
type S3Output struct {
	AccessKey      string
	Secret         string
	Bucket         string
	Endpoint       string
	Region         string
	ForcePathStyle bool
}

// EgressResult is the outcome LiveKit reports for an egress
type EgressResult struct {
	EgressID string
	Status   string
	Location string
	Error    string
	Final    bool
	Success  bool
}

// realRecorder is the real LiveKit egress implementation
type realRecorder struct {
	egress *lksdk.EgressClient
	output *S3Output
}

// NewRecorder creates a recorder; useMock returns one that needs no LiveKit server
func NewRecorder(url, apiKey, apiSecret string, output *S3Output, useMock bool) Recorder {
	if useMock {
		return &mockRecorder{}
	}
	return &realRecorder{
		egress: lksdk.NewEgressClient(url, apiKey, apiSecret),
		output: output,
	}
}

// StartRoomRecording starts a room composite egress and returns its ID
func (r *realRecorder) StartRoomRecording(ctx context.Context, req RecordingRequest) (string, error) {
	file := &livekit.EncodedFileOutput{
		FileType: fileType(req.Format),
		Filepath: req.Filepath,
	}
	if r.output != nil {
		file.Output = &livekit.EncodedFileOutput_S3{
			S3: &livekit.S3Upload{
				AccessKey:      r.output.AccessKey,
				Secret:         r.output.Secret,
				Bucket:         r.output.Bucket,
				Endpoint:       r.output.Endpoint,
				Region:         r.output.Region,
				ForcePathStyle: r.output.ForcePathStyle,
			},
		}
	}

	request := &livekit.RoomCompositeEgressRequest{
		RoomName:    req.RoomName,
		Layout:      "grid",
		AudioOnly:   req.Format == "ogg",
		FileOutputs: []*livekit.EncodedFileOutput{file},
	}
	applyQuality(request, req.Quality)

	info, err := r.egress.StartRoomCompositeEgress(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to start egress: %w", err)
	}
	return info.GetEgressId(), nil
}

// StopRecording stops an egress. Completion usually arrives later through the webhook.
func (r *realRecorder) StopRecording(ctx context.Context, egressID string) (*EgressResult, error) {
	info, err := r.egress.StopEgress(ctx, &livekit.StopEgressRequest{EgressId: egressID})
	if err != nil {
		return nil, fmt.Errorf("failed to stop egress: %w", err)
	}
	return ResultFromInfo(info), nil
}

// ResultFromInfo converts a LiveKit egress description
func ResultFromInfo(info *livekit.EgressInfo) *EgressResult {
	result := &EgressResult{
		EgressID: info.GetEgressId(),
		Status:   info.GetStatus().String(),
		Error:    info.GetError(),
	}
	if files := info.GetFileResults(); len(files) > 0 {
		result.Location = files[0].GetLocation()
	}

	switch info.GetStatus() {
	case livekit.EgressStatus_EGRESS_COMPLETE:
		result.Final, result.Success = true, true
	case livekit.EgressStatus_EGRESS_LIMIT_REACHED:
		// the file up to the limit is still usable
		result.Final, result.Success = true, result.Location != ""
	case livekit.EgressStatus_EGRESS_FAILED, livekit.EgressStatus_EGRESS_ABORTED:
		result.Final = true
	}
	if result.Final && !result.Success && result.Error == "" {
		result.Error = strings.ToLower(strings.TrimPrefix(result.Status, "EGRESS_"))
	}
	return result
}

func fileType(format string) livekit.EncodedFileType {
	switch format {
	case "mp4":
		return livekit.EncodedFileType_MP4
	case "ogg":
		return livekit.EncodedFileType_OGG
	default:
		return livekit.EncodedFileType_DEFAULT_FILETYPE
	}
}

func applyQuality(req *livekit.RoomCompositeEgressRequest, quality string) {
	switch quality {
	case "low":
		req.Options = &livekit.RoomCompositeEgressRequest_Advanced{
			Advanced: &livekit.EncodingOptions{
				Width:        854,
				Height:       480,
				Framerate:    24,
				VideoBitrate: 1200,
				AudioBitrate: 96,
			},
		}
	case "high":
		req.Options = &livekit.RoomCompositeEgressRequest_Preset{
			Preset: livekit.EncodingOptionsPreset_H264_1080P_30,
		}
	default:
		req.Options = &livekit.RoomCompositeEgressRequest_Preset{
			Preset: livekit.EncodingOptionsPreset_H264_720P_30,
		}
	}
}

// mockRecorder completes every recording as soon as it stops
type mockRecorder struct{}

// StartRoomRecording (mock) returns a fake egress ID
func (m *mockRecorder) StartRoomRecording(ctx context.Context, req RecordingRequest) (string, error) {
	if req.RoomName == "" {
		return "", fmt.Errorf("room name is required")
	}
	return "EG_mock_" + uuid.New().String(), nil
}

// StopRecording (mock) reports an immediately completed file
func (m *mockRecorder) StopRecording(ctx context.Context, egressID string) (*EgressResult, error) {
	return &EgressResult{
		EgressID: egressID,
		Status:   livekit.EgressStatus_EGRESS_COMPLETE.String(),
		Location: "mock://recordings/" + egressID,
		Final:    true,
		Success:  true,
	}, nil
}
