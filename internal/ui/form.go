package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formKind int

const (
	formAdd formKind = iota
	formEdit
)

type formField struct {
	label string
	input textinput.Model
}

// form is a column of text inputs followed by a submit button.
// Focus index len(fields) is the button.
type form struct {
	kind   formKind
	title  string
	target string // plant being edited
	fields []formField
	focus  int
	err    error
}

func newField(label, placeholder, value string, limit int) formField {
	t := textinput.New()
	t.Placeholder = placeholder
	t.CharLimit = limit
	t.Cursor.Style = focusedStyle
	t.SetValue(value)
	return formField{label: label, input: t}
}

func newAddForm() *form {
	f := &form{
		kind:  formAdd,
		title: "Add plant",
		fields: []formField{
			newField("Name", "Boston fern", "", 64),
			newField("Water every (days)", "3", "", 5),
			newField("Fertilize every (days)", "30", "", 5),
			newField("Last watered (optional)", "YYYY-MM-DD", "", 10),
			newField("Last fertilized (optional)", "YYYY-MM-DD", "", 10),
		},
	}
	f.setFocus(0)
	return f
}

func newEditForm(name string, waterDays, fertilizeDays int) *form {
	f := &form{
		kind:   formEdit,
		title:  "Edit intervals for " + name,
		target: name,
		fields: []formField{
			newField("Water every (days)", "3", fmt.Sprint(waterDays), 5),
			newField("Fertilize every (days)", "30", fmt.Sprint(fertilizeDays), 5),
		},
	}
	f.setFocus(0)
	return f
}

func (f *form) value(i int) string {
	return f.fields[i].input.Value()
}

func (f *form) onButton() bool {
	return f.focus == len(f.fields)
}

func (f *form) setFocus(i int) tea.Cmd {
	n := len(f.fields) + 1
	f.focus = ((i % n) + n) % n

	var cmd tea.Cmd
	for j := range f.fields {
		in := &f.fields[j].input
		if j == f.focus {
			cmd = in.Focus()
			in.PromptStyle = focusedStyle
			in.TextStyle = focusedStyle
			continue
		}
		in.Blur()
		in.PromptStyle = noStyle
		in.TextStyle = noStyle
	}
	return cmd
}

func (f *form) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

// updateInputs forwards msg to the fields. Only the focused input reacts.
func (f *form) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(f.fields))
	for i := range f.fields {
		f.fields[i].input, cmds[i] = f.fields[i].input.Update(msg)
	}
	return tea.Batch(cmds...)
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title) + "\n\n")
	for i, field := range f.fields {
		label := blurredStyle.Render(field.label + ":")
		if i == f.focus {
			label = focusedStyle.Render(field.label + ":")
		}
		fmt.Fprintf(&b, " %s\n %s\n\n", label, field.input.View())
	}

	button := fmt.Sprintf("[ %s ]", blurredStyle.Render("Submit"))
	if f.onButton() {
		button = focusedStyle.Render("[ Submit ]")
	}
	b.WriteString(" " + button + "\n\n")

	if f.err != nil {
		b.WriteString(errorStyle.Render(" "+f.err.Error()) + "\n\n")
	}
	b.WriteString(mutedStyle.Render(" tab/shift+tab: navigate • enter: submit • esc: cancel"))
	return b.String()
}
