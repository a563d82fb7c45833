package history

import (
	"testing"

	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
)

func TestAppendAndAll(t *testing.T) {
	l := NewLog()
	require.Empty(t, l.All())
	require.Equal(t, 0, l.Len())

	l.Append(
		domain.Turn{Role: domain.RoleUser, Text: "hi"},
		domain.Turn{Role: domain.RoleAssistant, Text: "hello"},
	)
	require.Equal(t, 2, l.Len())

	all := l.All()
	require.Len(t, all, 2)
	require.Equal(t, domain.RoleUser, all[0].Role)
	require.Equal(t, "hi", all[0].Text)
	require.Equal(t, domain.RoleAssistant, all[1].Role)
}

func TestWindowReturnsMostRecent(t *testing.T) {
	l := NewLog()
	for i := 0; i < 5; i++ {
		l.Append(domain.Turn{Role: domain.RoleUser, Text: string(rune('a' + i))})
	}

	w := l.Window(2)
	require.Len(t, w, 2)
	require.Equal(t, "d", w[0].Text)
	require.Equal(t, "e", w[1].Text)

	require.Len(t, l.Window(100), 5)
	require.Empty(t, l.Window(0))
	require.Empty(t, l.Window(-1))
}

func TestSnapshotsAreIndependent(t *testing.T) {
	l := NewLog()
	l.Append(domain.Turn{Role: domain.RoleUser, Text: "original"})

	all := l.All()
	all[0].Text = "mutated"

	require.Equal(t, "original", l.All()[0].Text)
}
