package domain

// OutputType identifies the artifact kind a scene renders to.
type OutputType string

const (
	// OutputImage produces a single still frame.
	OutputImage OutputType = "image"
	// OutputVideo produces an animated clip.
	OutputVideo OutputType = "video"
)

// SceneType classifies how brand material participates in a scene.
type SceneType string

const (
	// SceneStandard is a generic scene with no special brand treatment.
	SceneStandard SceneType = "standard"
	// SceneProductInContext places a real product photo inside a
	// generated environment.
	SceneProductInContext SceneType = "product-in-context"
	// SceneBrandedEnvironment uses a stored location asset as the
	// scene background.
	SceneBrandedEnvironment SceneType = "branded-environment"
	// SceneProductCloseup features the product photo itself, full frame.
	SceneProductCloseup SceneType = "product-closeup"
)

// SceneDescriptor is the caller-supplied description of a single scene.
// It is immutable within the engine.
type SceneDescriptor struct {
	// ID identifies the scene within its project.
	ID string

	// VisualDirection is the free-text description of what the
	// scene should show.
	VisualDirection string

	// Narration is the voiceover text spoken during the scene.
	Narration string

	// DurationSeconds is the scene length.
	DurationSeconds float64

	// FrameRate is the output frame rate. Zero means the engine
	// default (30).
	FrameRate int

	// SceneType is an optional caller hint. When empty the analyzer
	// derives it from the text.
	SceneType SceneType

	// Output selects still or animated rendering.
	Output OutputType
}

// FPS returns the effective frame rate for timing calculations.
func (s SceneDescriptor) FPS() int {
	if s.FrameRate <= 0 {
		return 30
	}
	return s.FrameRate
}

// TotalFrames returns the scene length in frames.
func (s SceneDescriptor) TotalFrames() int {
	return int(s.DurationSeconds * float64(s.FPS()))
}
