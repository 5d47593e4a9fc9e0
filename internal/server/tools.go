package server

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	// launch
	s.register(
		mcp.NewTool("launch",
			mcp.WithDescription("Launch the DAW if it is not already running and wait for its window to appear"),
		),
		s.handleLaunch,
	)

	// close
	s.register(
		mcp.NewTool("close",
			mcp.WithDescription("Close the DAW process"),
		),
		s.handleClose,
	)

	// focus_window
	s.register(
		mcp.NewTool("focus_window",
			mcp.WithDescription("Locate the DAW window, bring it to the foreground, and return its title and bounds"),
		),
		s.handleFocusWindow,
	)

	// list_windows
	s.register(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List visible top-level windows on the desktop"),
		),
		s.handleListWindows,
	)

	// click
	s.register(
		mcp.NewTool("click",
			mcp.WithDescription("Click at coordinates. Coordinates are relative to the DAW window unless absolute is set."),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
			mcp.WithString("button", mcp.Description("Mouse button: left, right, middle (default: left)")),
			mcp.WithBoolean("double", mcp.Description("Double-click")),
			mcp.WithBoolean("absolute", mcp.Description("Treat coordinates as screen-absolute")),
		),
		s.handleClick,
	)

	// drag
	s.register(
		mcp.NewTool("drag",
			mcp.WithDescription("Press at coordinates and drag by a delta. Used for faders, knobs, and clip moves."),
			mcp.WithNumber("x", mcp.Description("Start X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Start Y coordinate"), mcp.Required()),
			mcp.WithNumber("dx", mcp.Description("Horizontal delta in pixels"), mcp.Required()),
			mcp.WithNumber("dy", mcp.Description("Vertical delta in pixels"), mcp.Required()),
			mcp.WithNumber("duration", mcp.Description("Drag duration in ms (default: 500)")),
			mcp.WithBoolean("absolute", mcp.Description("Treat coordinates as screen-absolute")),
		),
		s.handleDrag,
	)

	// move_mouse
	s.register(
		mcp.NewTool("move_mouse",
			mcp.WithDescription("Move the pointer without clicking"),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
			mcp.WithBoolean("absolute", mcp.Description("Treat coordinates as screen-absolute")),
		),
		s.handleMoveMouse,
	)

	// key
	s.register(
		mcp.NewTool("key",
			mcp.WithDescription("Press and release a single key (e.g. 'enter', 'space', 'f5')"),
			mcp.WithString("key", mcp.Description("Key name"), mcp.Required()),
		),
		s.handleKey,
	)

	// hotkey
	s.register(
		mcp.NewTool("hotkey",
			mcp.WithDescription("Press a key combination (e.g. 'ctrl+s', 'ctrl+shift+h')"),
			mcp.WithString("keys", mcp.Description("Combo with '+' separators"), mcp.Required()),
		),
		s.handleHotkey,
	)

	// type_text
	s.register(
		mcp.NewTool("type_text",
			mcp.WithDescription("Type text character by character with an inter-character delay"),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
			mcp.WithNumber("delay", mcp.Description("Inter-character delay in ms (default: configured)")),
		),
		s.handleTypeText,
	)

	// screenshot
	s.register(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the DAW window (or a screen region) to a PNG file and return its path"),
			mcp.WithString("region", mcp.Description("Screen region as 'x,y,w,h' (default: DAW window)")),
			mcp.WithNumber("scale", mcp.Description("Scale factor in (0, 1] (default: 1)")),
			mcp.WithString("output", mcp.Description("Output file path (default: screenshot dir)")),
		),
		s.handleScreenshot,
	)

	// find_image
	s.register(
		mcp.NewTool("find_image",
			mcp.WithDescription("Locate a reference image on screen by template matching and return its center and confidence"),
			mcp.WithString("path", mcp.Description("Reference image file (PNG or JPEG)"), mcp.Required()),
			mcp.WithNumber("threshold", mcp.Description("Confidence threshold in [0, 1] (default: configured)")),
			mcp.WithString("region", mcp.Description("Search region as 'x,y,w,h' (default: DAW window)")),
		),
		s.handleFindImage,
	)

	// click_image
	s.register(
		mcp.NewTool("click_image",
			mcp.WithDescription("Locate a reference image on screen and click its center"),
			mcp.WithString("path", mcp.Description("Reference image file (PNG or JPEG)"), mcp.Required()),
			mcp.WithNumber("threshold", mcp.Description("Confidence threshold in [0, 1] (default: configured)")),
			mcp.WithString("region", mcp.Description("Search region as 'x,y,w,h' (default: DAW window)")),
			mcp.WithString("button", mcp.Description("Mouse button: left, right, middle (default: left)")),
		),
		s.handleClickImage,
	)

	// create_project
	s.register(
		mcp.NewTool("create_project",
			mcp.WithDescription("Create a new named project via the DAW's file menu"),
			mcp.WithString("name", mcp.Description("Project name"), mcp.Required()),
		),
		s.handleCreateProject,
	)

	// save_project
	s.register(
		mcp.NewTool("save_project",
			mcp.WithDescription("Save the current project, optionally under a new path"),
			mcp.WithString("path", mcp.Description("Save-as path (default: save in place)")),
		),
		s.handleSaveProject,
	)

	// adjust_mixer_volume
	s.register(
		mcp.NewTool("adjust_mixer_volume",
			mcp.WithDescription("Set a mixer track's volume fader. 0 is silent, 1 is full."),
			mcp.WithNumber("track", mcp.Description("Mixer track index (0-based)"), mcp.Required()),
			mcp.WithNumber("volume", mcp.Description("Volume in [0, 1]"), mcp.Required()),
		),
		s.handleAdjustMixerVolume,
	)

	// import_midi
	s.register(
		mcp.NewTool("import_midi",
			mcp.WithDescription("Import a MIDI file into the current project and place it in the playlist"),
			mcp.WithString("path", mcp.Description("MIDI file path"), mcp.Required()),
		),
		s.handleImportMIDI,
	)

	// start_playback
	s.register(
		mcp.NewTool("start_playback",
			mcp.WithDescription("Start playback"),
		),
		s.handleStartPlayback,
	)

	// stop_playback
	s.register(
		mcp.NewTool("stop_playback",
			mcp.WithDescription("Stop playback"),
		),
		s.handleStopPlayback,
	)

	// undo
	s.register(
		mcp.NewTool("undo",
			mcp.WithDescription("Undo the last action in the DAW"),
		),
		s.handleUndo,
	)

	// redo
	s.register(
		mcp.NewTool("redo",
			mcp.WithDescription("Redo the last undone action in the DAW"),
		),
		s.handleRedo,
	)

	// convert_audio
	s.register(
		mcp.NewTool("convert_audio",
			mcp.WithDescription("Transcribe an audio file to MIDI using the configured pitch-detection backend"),
			mcp.WithString("audio", mcp.Description("Audio file path (wav, mp3, flac)"), mcp.Required()),
			mcp.WithString("output_dir", mcp.Description("Directory for the MIDI output (default: configured)")),
		),
		s.handleConvertAudio,
	)
}
