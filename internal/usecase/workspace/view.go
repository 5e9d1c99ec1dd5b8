package workspace

import (
	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/internal/usecase/texttools"
)

// Name identifies a view
type Name string

const (
	NameDashboard     Name = "dashboard"
	NameTranscription Name = "transcription"
	NameTools         Name = "tools"
	NameChatBot       Name = "chatbot"
	NameImageEditor   Name = "image_editor"
	NameLive          Name = "live"
	NameVideoCreator  Name = "video_creator"
	NameSettings      Name = "settings"
)

// View is one screen of the workspace. The set of views is closed.
type View interface {
	Name() Name
	view()
}

type Dashboard struct{}
type Transcription struct{}
type ChatBot struct{}
type ImageEditor struct{}
type LiveConversation struct{}
type VideoCreator struct{}
type Settings struct{}

// TextTools remembers which tool tab is open
type TextTools struct {
	ActiveTool texttools.Tool
}

func (Dashboard) Name() Name        { return NameDashboard }
func (Transcription) Name() Name    { return NameTranscription }
func (TextTools) Name() Name        { return NameTools }
func (ChatBot) Name() Name          { return NameChatBot }
func (ImageEditor) Name() Name      { return NameImageEditor }
func (LiveConversation) Name() Name { return NameLive }
func (VideoCreator) Name() Name     { return NameVideoCreator }
func (Settings) Name() Name         { return NameSettings }

func (Dashboard) view()        {}
func (Transcription) view()    {}
func (TextTools) view()        {}
func (ChatBot) view()          {}
func (ImageEditor) view()      {}
func (LiveConversation) view() {}
func (VideoCreator) view()     {}
func (Settings) view()         {}

// Parse builds the view called name. tool only applies to the text tools and
// defaults to the layout fixer.
func Parse(name string, tool string) (View, error) {
	switch Name(name) {
	case NameDashboard:
		return Dashboard{}, nil
	case NameTranscription:
		return Transcription{}, nil
	case NameTools:
		t := texttools.Tool(tool)
		if t == "" {
			t = texttools.ToolFixer
		}
		if !t.IsValid() {
			return nil, entities.ErrUnknownTool
		}
		return TextTools{ActiveTool: t}, nil
	case NameChatBot:
		return ChatBot{}, nil
	case NameImageEditor:
		return ImageEditor{}, nil
	case NameLive:
		return LiveConversation{}, nil
	case NameVideoCreator:
		return VideoCreator{}, nil
	case NameSettings:
		return Settings{}, nil
	}
	return nil, entities.ErrUnknownView
}

// Action is a shortcut into another view
type Action struct {
	Label string `json:"label"`
	View  Name   `json:"view"`
}

// Descriptor tells a client what to show for a view
type Descriptor struct {
	View       Name     `json:"view"`
	Label      string   `json:"label"`
	ActiveTool string   `json:"active_tool,omitempty"`
	Endpoints  []string `json:"endpoints,omitempty"`
	Actions    []Action `json:"actions,omitempty"`
}

// Render describes v
func Render(v View) Descriptor {
	switch v := v.(type) {
	case Transcription:
		return Descriptor{
			View:  v.Name(),
			Label: "Transcription",
			Endpoints: []string{
				"POST /v1/transcriptions",
				"POST /v1/transcriptions/search",
				"POST /v1/transcriptions/summary",
				"POST /v1/transcriptions/export",
			},
		}
	case TextTools:
		return Descriptor{
			View:       v.Name(),
			Label:      "Text Tools",
			ActiveTool: string(v.ActiveTool),
			Endpoints:  []string{"POST /v1/tools/text", "GET /v1/tools/history", "DELETE /v1/tools/history"},
		}
	case ChatBot:
		return Descriptor{
			View:      v.Name(),
			Label:     "AI Chatbot",
			Endpoints: []string{"POST /v1/chat/conversations", "POST /v1/chat/conversations/:id/messages"},
		}
	case ImageEditor:
		return Descriptor{View: v.Name(), Label: "Image Editor", Endpoints: []string{"POST /v1/images/edit"}}
	case LiveConversation:
		return Descriptor{View: v.Name(), Label: "Live Conversation", Endpoints: []string{"GET /v1/live"}}
	case VideoCreator:
		return Descriptor{View: v.Name(), Label: "Veo Video", Endpoints: []string{"POST /v1/videos"}}
	case Settings:
		return Descriptor{View: v.Name(), Label: "Settings", Endpoints: []string{"GET /v1/auth/me", "POST /v1/auth/logout"}}
	default:
		return Descriptor{
			View:  NameDashboard,
			Label: "Dashboard",
			Actions: []Action{
				{Label: "Quick Fix", View: NameTools},
				{Label: "New Transcription", View: NameTranscription},
			},
		}
	}
}
