package xmltree

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func collectEvents(t *testing.T, doc string) []Event {
	t.Helper()
	cur := NewCursor(strings.NewReader(doc))
	var events []Event
	for {
		ev, err := cur.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestCursor_EventOrder(t *testing.T) {
	events := collectEvents(t, `<a><b/><c/></a>`)
	require.Len(t, events, 6)

	require.Equal(t, StartElement, events[0].Kind)
	require.Equal(t, "a", events[0].Elem.Name.Local)
	require.Equal(t, "b", events[1].Elem.Name.Local)
	require.Equal(t, EndElement, events[2].Kind)
	require.Equal(t, "b", events[2].Elem.Name.Local)
	require.Equal(t, "c", events[3].Elem.Name.Local)
	require.Equal(t, EndElement, events[5].Kind)
	require.Equal(t, "a", events[5].Elem.Name.Local)
}

func TestCursor_AttachesCompletedChildren(t *testing.T) {
	events := collectEvents(t, `<a><b x="1"/><c/></a>`)
	root := events[len(events)-1].Elem
	require.Len(t, root.Children, 2)
	require.Equal(t, "b", root.Children[0].Name.Local)
	require.Equal(t, "1", root.Children[0].Get("x"))
	require.Equal(t, "c", root.Children[1].Name.Local)
}

func TestCursor_TextBeforeFirstChildOnly(t *testing.T) {
	events := collectEvents(t, `<a>head<b/>tail</a>`)
	root := events[len(events)-1].Elem
	require.Equal(t, "head", root.Text, "tail text after a child is dropped")
}

func TestCursor_NamespaceResolution(t *testing.T) {
	const doc = `<a xmlns="urn:main" xmlns:o="urn:other"><o:b o:k="v"/></a>`
	events := collectEvents(t, doc)

	require.Equal(t, QName{Space: "urn:main", Local: "a"}, events[0].Elem.Name)
	b := events[1].Elem
	require.Equal(t, QName{Space: "urn:other", Local: "b"}, b.Name)
	require.Equal(t, []Attr{{Name: QName{Space: "urn:other", Local: "k"}, Value: "v"}}, b.Attr)
	require.Empty(t, events[0].Elem.Attr, "xmlns declarations are not surfaced as attributes")
}

func TestCursor_ClearReleasesSubtree(t *testing.T) {
	cur := NewCursor(strings.NewReader(`<a><b>text<c/></b><d/></a>`))
	for {
		ev, err := cur.Next()
		require.NoError(t, err)
		if ev.Kind == EndElement && ev.Elem.Name.Local == "b" {
			require.Len(t, ev.Elem.Children, 1)
			ev.Elem.Clear()
			require.Empty(t, ev.Elem.Children)
			require.Empty(t, ev.Elem.Text)
			return
		}
	}
}

func TestCursor_SyntaxError(t *testing.T) {
	cur := NewCursor(strings.NewReader(`<a><b></a>`))
	for {
		_, err := cur.Next()
		if err != nil {
			require.NotErrorIs(t, err, io.EOF)
			return
		}
	}
}

func TestElement_FindHelpers(t *testing.T) {
	events := collectEvents(t, `<a><b>1</b><c/><b>2</b></a>`)
	root := events[len(events)-1].Elem

	b := root.Find(QName{Local: "b"})
	require.NotNil(t, b)
	require.Equal(t, "1", b.Text)
	require.Nil(t, root.Find(QName{Local: "missing"}))

	all := root.FindAll(QName{Local: "b"})
	require.Len(t, all, 2)
	require.Equal(t, "2", all[1].Text)
}
