package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safegergis/tome/pkg/pointer"
)

func TestFoldProgress(t *testing.T) {
	tests := []struct {
		name           string
		session        *Session
		currentPage    int
		currentSeconds int
		wantPage       int
		wantSeconds    int
	}{
		{
			name: "end_page moves bookmark to max not sum",
			session: &Session{
				Method:    MethodPhysical,
				StartPage: pointer.To(10),
				EndPage:   pointer.To(40),
				PagesRead: pointer.To(30),
			},
			currentPage: 5,
			wantPage:    40,
		},
		{
			name: "end_page behind bookmark never regresses",
			session: &Session{
				Method:    MethodEbook,
				StartPage: pointer.To(10),
				EndPage:   pointer.To(40),
			},
			currentPage: 120,
			wantPage:    120,
		},
		{
			name: "pages_read alone increments",
			session: &Session{
				Method:    MethodPhysical,
				PagesRead: pointer.To(30),
			},
			currentPage: 5,
			wantPage:    35,
		},
		{
			name: "end_page wins over pages_read",
			session: &Session{
				Method:    MethodPhysical,
				PagesRead: pointer.To(30),
				EndPage:   pointer.To(12),
			},
			currentPage: 5,
			wantPage:    12,
		},
		{
			name: "audiobook minutes become seconds",
			session: &Session{
				Method:      MethodAudiobook,
				MinutesRead: pointer.To(45),
			},
			currentPage:    5,
			currentSeconds: 600,
			wantPage:       5,
			wantSeconds:    3300,
		},
		{
			name: "audiobook never moves the page bookmark",
			session: &Session{
				Method:      MethodAudiobook,
				MinutesRead: pointer.To(10),
				PagesRead:   pointer.To(30),
				EndPage:     pointer.To(90),
			},
			currentPage: 5,
			wantPage:    5,
			wantSeconds: 600,
		},
		{
			name:        "empty session leaves the entry alone",
			session:     &Session{Method: MethodPhysical},
			currentPage: 42,
			wantPage:    42,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			page, seconds := foldProgress(test.session).apply(test.currentPage, test.currentSeconds)
			assert.Equal(t, test.wantPage, page)
			assert.Equal(t, test.wantSeconds, seconds)
		})
	}
}
