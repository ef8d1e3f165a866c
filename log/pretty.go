package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles holds the lipgloss styles for one output. Styles are bound to
// a renderer for that output, so color is dropped when it is not a terminal.
type prettyStyles struct {
	time   lipgloss.Style
	source lipgloss.Style
	key    lipgloss.Style
	number lipgloss.Style
	truthy lipgloss.Style
	falsy  lipgloss.Style
	level  map[slog.Level]lipgloss.Style
}

func makePrettyStyles(w io.Writer) prettyStyles {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return prettyStyles{
		time:   fg("8"),
		source: fg("8").Italic(true),
		key:    fg("6"),
		number: fg("3"),
		truthy: fg("2"),
		falsy:  fg("1"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("8").Bold(true),
			slog.Level(LevelDebug): fg("4").Bold(true),
			slog.Level(LevelInfo):  fg("2").Bold(true),
			slog.Level(LevelWarn):  fg("3").Bold(true),
			slog.Level(LevelError): fg("1").Bold(true),
		},
	}
}

// levelStyle returns the style of the nearest defined level at or below l.
func (s prettyStyles) levelStyle(l slog.Level) lipgloss.Style {
	for _, at := range []Level{LevelError, LevelWarn, LevelInfo, LevelDebug} {
		if l >= slog.Level(at) {
			return s.level[slog.Level(at)]
		}
	}

	return s.level[slog.Level(LevelTrace)]
}

// prettyHandler writes one styled line per record:
//
//	TIME LEVEL [source] message key=value ...
type prettyHandler struct {
	mu         *sync.Mutex
	w          io.Writer
	level      Level
	caller     bool
	formatTime FormatTime
	styles     prettyStyles
	prefix     string // Group prefix for keys, with trailing '.'
	preset     []byte // Attributes from WithAttrs, already formatted
}

func newPrettyHandler(
	w io.Writer,
	level Level,
	caller bool,
	formatTime FormatTime,
) *prettyHandler {
	return &prettyHandler{
		mu:         &sync.Mutex{},
		w:          w,
		level:      level,
		caller:     caller,
		formatTime: formatTime,
		styles:     makePrettyStyles(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.Level(h.level)
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			buf.WriteString(h.styles.time.Render(ts))
			buf.WriteByte(' ')
		}
	}

	label := fmt.Sprintf("%-5s", strings.ToUpper(Level(r.Level).String()))
	buf.WriteString(h.styles.levelStyle(r.Level).Render(label))

	if h.caller {
		if src := r.Source(); src != nil && src.File != "" {
			buf.WriteByte(' ')
			buf.WriteString(h.styles.source.Render(
				filepath.Base(src.File) + ":" + strconv.Itoa(src.Line)))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	buf.Write(h.preset)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	buf := bytes.NewBuffer(bytes.Clone(h.preset))
	for _, a := range attrs {
		h.writeAttr(buf, h.prefix, a)
	}

	c := *h
	c.preset = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, prefix, ga)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.styles.key.Render(prefix + a.Key))
	buf.WriteByte('=')
	buf.WriteString(h.formatValue(a.Value))
}

func (h *prettyHandler) formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindDuration:
		return h.styles.number.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.styles.truthy.Render("true")
		}

		return h.styles.falsy.Render("false")

	case slog.KindTime:
		return h.styles.time.Render(h.formatTime(v.Time()))

	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return quoteIfNeeded(err.Error())
		}

		return quoteIfNeeded(fmt.Sprint(v.Any()))

	default:
		return quoteIfNeeded(v.String())
	}
}

// quoteIfNeeded quotes s when it would not read as a single token.
func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}

	return s
}
