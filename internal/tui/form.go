package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"studioctl/internal/api"
)

type fieldKind int

const (
	fieldString fieldKind = iota
	fieldInt
	fieldBool
	fieldSelect
)

type formField struct {
	Key      string
	Label    string
	Help     string
	Kind     fieldKind
	Value    string
	Options  []string
	Required bool
}

// ideaForm is the new-idea wizard. Submit stays disabled until every field
// passes validation, and errors render beside the field that caused them.
type ideaForm struct {
	Fields  []formField
	Index   int
	Input   textinput.Model
	Errors  map[string]string
	Saving  bool
	genres  []api.Genre
}

func newIdeaForm(genres []api.Genre, width int) *ideaForm {
	genreOptions := make([]string, 0, len(genres))
	for _, g := range genres {
		genreOptions = append(genreOptions, g.Name)
	}
	if len(genreOptions) == 0 {
		genreOptions = []string{""}
	}

	form := &ideaForm{
		Fields: []formField{
			{Key: "title", Label: "Title", Help: "Short working title", Kind: fieldString, Required: true},
			{Key: "genre", Label: "Genre", Help: "left/right to cycle", Kind: fieldSelect, Options: genreOptions, Value: genreOptions[0], Required: true},
			{Key: "niche_label", Label: "Niche", Help: "e.g. rain sounds for sleep", Kind: fieldString, Required: true},
			{Key: "description", Label: "Description", Kind: fieldString},
			{Key: "mood_tags", Label: "Mood tags", Help: "comma separated", Kind: fieldString},
			{Key: "duration", Label: "Duration (min)", Help: "60-120", Kind: fieldInt, Value: "70"},
			{Key: "num_tracks", Label: "Tracks", Help: "10-30", Kind: fieldInt, Value: "20"},
			{Key: "template", Label: "Save as template", Kind: fieldBool, Value: "n"},
		},
		Errors: map[string]string{},
		genres: genres,
	}

	input := textinput.New()
	input.CharLimit = 255
	input.Width = clampInt(width-30, 20, 80)
	input.Focus()
	form.Input = input
	form.loadFieldIntoInput()
	form.revalidate()
	return form
}

func (f *ideaForm) currentField() *formField {
	return &f.Fields[f.Index]
}

func (f *ideaForm) fieldValue(key string) string {
	for i := range f.Fields {
		if f.Fields[i].Key == key {
			return strings.TrimSpace(f.Fields[i].Value)
		}
	}
	return ""
}

func (f *ideaForm) loadFieldIntoInput() {
	field := f.currentField()
	if field.Kind == fieldBool || field.Kind == fieldSelect {
		return
	}
	f.Input.SetValue(field.Value)
	f.Input.CursorEnd()
}

func (f *ideaForm) commitInput() {
	field := f.currentField()
	if field.Kind == fieldBool || field.Kind == fieldSelect {
		return
	}
	field.Value = f.Input.Value()
	f.revalidate()
}

func (f *ideaForm) cycleSelect(delta int) {
	field := f.currentField()
	if field.Kind != fieldSelect || len(field.Options) == 0 {
		return
	}
	idx := 0
	for i, opt := range field.Options {
		if opt == field.Value {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(field.Options)) % len(field.Options)
	field.Value = field.Options[idx]
	f.revalidate()
}

func (f *ideaForm) toggleBool() {
	field := f.currentField()
	if field.Kind != fieldBool {
		return
	}
	if field.Value == "y" {
		field.Value = "n"
	} else {
		field.Value = "y"
	}
}

// toRequest assembles the create payload from the current field values.
// Unparseable numbers become zero so range validation reports them.
func (f *ideaForm) toRequest() api.CreateIdeaRequest {
	duration, _ := strconv.Atoi(f.fieldValue("duration"))
	tracks, _ := strconv.Atoi(f.fieldValue("num_tracks"))

	var moodTags []string
	for _, tag := range strings.Split(f.fieldValue("mood_tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			moodTags = append(moodTags, tag)
		}
	}

	return api.CreateIdeaRequest{
		GenreID:               f.genreID(f.fieldValue("genre")),
		Title:                 f.fieldValue("title"),
		Description:           f.fieldValue("description"),
		NicheLabel:            f.fieldValue("niche_label"),
		MoodTags:              moodTags,
		TargetDurationMinutes: duration,
		NumTracks:             tracks,
		IsTemplate:            f.fieldValue("template") == "y",
	}
}

func (f *ideaForm) genreID(name string) string {
	for _, g := range f.genres {
		if g.Name == name {
			return g.ID
		}
	}
	return ""
}

// revalidate refreshes the per-field error map from the current values.
func (f *ideaForm) revalidate() {
	f.Errors = map[string]string{}
	err := api.ValidateRequest(f.toRequest())
	if err == nil {
		return
	}
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		f.Errors["form"] = err.Error()
		return
	}
	for field, reason := range ve.Fields {
		f.Errors[formFieldKey(field)] = reason
	}
}

// Valid reports whether the form can be submitted.
func (f *ideaForm) Valid() bool {
	return len(f.Errors) == 0
}

// formFieldKey maps validator struct field names onto wizard field keys.
func formFieldKey(structField string) string {
	switch structField {
	case "Title":
		return "title"
	case "GenreID":
		return "genre"
	case "NicheLabel":
		return "niche_label"
	case "TargetDurationMinutes":
		return "duration"
	case "NumTracks":
		return "num_tracks"
	default:
		return "form"
	}
}
