package editor

import (
	"context"
	"errors"
	"sync"

	"module/postforge/internal/clients/cohere"
	"module/postforge/internal/models"
	"module/postforge/internal/utilities"

	"github.com/google/uuid"
)

var (
	// ErrGenerationInFlight is returned when Submit is called while a
	// previous generation has not finished. Concurrent submissions are
	// blocked rather than queued or raced.
	ErrGenerationInFlight = errors.New("a generation is already in progress")

	ErrGenerationFailed = errors.New("failed to generate post")
)

// Draft is the in-memory, unsaved form state of a post being composed.
type Draft struct {
	Tone           string
	TargetReaction string
	Topic          string
	TargetAudience string
	Content        string
}

// Entry is one item of the local post list. Unsynced entries hold
// generated content that could not be persisted; they exist only in this
// editor instance.
type Entry struct {
	Post     models.Post
	Unsynced bool
}

// ContentClient produces text for a rendered prompt.
type ContentClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// PostStore is the persistence capability the editor drives.
type PostStore interface {
	List(ctx context.Context, userId string) ([]models.Post, error)
	Create(ctx context.Context, post models.Post) (models.Post, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (models.Post, error)
	Delete(ctx context.Context, userId, id string) error
}

// Editor orchestrates draft state, the generation call and persistence for
// one user's composing session.
type Editor struct {
	mu         sync.Mutex
	userId     string
	client     ContentClient
	store      PostStore
	draft      Draft
	entries    []Entry
	selectedId string
	generating bool
	errMsg     string
}

func New(userId string, client ContentClient, store PostStore) *Editor {
	return &Editor{userId: userId, client: client, store: store}
}

func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

func (e *Editor) SetDraft(draft Draft) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = draft
}

func (e *Editor) Entries() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Entry, len(e.entries))
	copy(out, e.entries)
	return out
}

func (e *Editor) SelectedId() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedId
}

func (e *Editor) Generating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generating
}

func (e *Editor) ErrMsg() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errMsg
}

// Refresh replaces the synced part of the list with the server's view,
// newest first. Unsynced entries stay at the front.
func (e *Editor) Refresh(ctx context.Context) error {
	posts, err := e.store.List(ctx, e.userId)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	entries := []Entry{}
	for _, entry := range e.entries {
		if entry.Unsynced {
			entries = append(entries, entry)
		}
	}
	for _, post := range posts {
		entries = append(entries, Entry{Post: post})
	}
	e.entries = entries
	return nil
}

// Submit runs one generation round: generate, then persist. A generation
// result is never discarded because persistence failed; it is retained as
// an unsynced local entry instead.
func (e *Editor) Submit(ctx context.Context) error {
	e.mu.Lock()
	if e.generating {
		e.mu.Unlock()
		return ErrGenerationInFlight
	}
	e.generating = true
	e.errMsg = ""
	draft := e.draft
	selectedId := e.selectedId
	e.mu.Unlock()

	// Leaving the generating state must happen on every path out.
	defer func() {
		e.mu.Lock()
		e.generating = false
		e.mu.Unlock()
	}()

	prompt := utilities.BuildPostPrompt(draft.Tone, draft.TargetReaction,
		draft.Topic, draft.TargetAudience, draft.Content)
	text, err := e.client.GenerateContent(ctx, prompt)
	if err != nil || text == cohere.FallbackText {
		e.mu.Lock()
		e.errMsg = "Failed to generate post"
		e.mu.Unlock()
		return ErrGenerationFailed
	}

	if selectedId == "" {
		return e.persistNew(ctx, draft, text)
	}
	return e.persistUpdate(ctx, selectedId, draft, text)
}

func (e *Editor) persistNew(ctx context.Context, draft Draft, text string) error {
	post := models.Post{
		UserId:         e.userId,
		Tone:           optional(draft.Tone),
		Topic:          draft.Topic,
		Content:        &text,
		TargetAudience: optional(draft.TargetAudience),
		TargetReaction: optional(draft.TargetReaction),
	}

	created, err := e.store.Create(ctx, post)
	if err != nil {
		// Graceful degradation: keep the generation as a local-only,
		// unsynced entry rather than losing it.
		post.Id = uuid.NewString()
		e.mu.Lock()
		e.entries = append([]Entry{{Post: post, Unsynced: true}}, e.entries...)
		e.selectedId = post.Id
		e.draft.Content = text
		e.errMsg = "Post generated but could not be saved"
		e.mu.Unlock()
		return nil
	}

	e.mu.Lock()
	e.entries = append([]Entry{{Post: created}}, e.entries...)
	e.selectedId = created.Id
	e.draft.Content = text
	e.mu.Unlock()
	return nil
}

func (e *Editor) persistUpdate(ctx context.Context, selectedId string, draft Draft, text string) error {
	fields := map[string]interface{}{
		"tone":            optional(draft.Tone),
		"topic":           draft.Topic,
		"content":         &text,
		"target_audience": optional(draft.TargetAudience),
		"target_reaction": optional(draft.TargetReaction),
	}

	updated, err := e.store.Update(ctx, selectedId, fields)
	if err != nil {
		e.mu.Lock()
		e.draft.Content = text
		e.errMsg = "Post generated but could not be saved"
		e.mu.Unlock()
		return nil
	}

	e.mu.Lock()
	for i, entry := range e.entries {
		if entry.Post.Id == selectedId {
			e.entries[i] = Entry{Post: updated}
			break
		}
	}
	e.draft.Content = text
	e.mu.Unlock()
	return nil
}

// SelectPost copies the post's fields into the draft and marks it as the
// one being edited.
func (e *Editor) SelectPost(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, entry := range e.entries {
		if entry.Post.Id == id {
			e.draft = Draft{
				Tone:           deref(entry.Post.Tone),
				TargetReaction: deref(entry.Post.TargetReaction),
				Topic:          entry.Post.Topic,
				TargetAudience: deref(entry.Post.TargetAudience),
				Content:        deref(entry.Post.Content),
			}
			e.selectedId = id
			return true
		}
	}
	return false
}

// DeletePost removes the post from the store and the local list. Unsynced
// entries only exist locally, so no store call is made for them. Deleting
// the selected post resets the draft to new-post defaults.
func (e *Editor) DeletePost(ctx context.Context, id string) error {
	e.mu.Lock()
	var target *Entry
	for i := range e.entries {
		if e.entries[i].Post.Id == id {
			target = &e.entries[i]
			break
		}
	}
	if target == nil {
		e.mu.Unlock()
		return nil
	}
	unsynced := target.Unsynced
	e.mu.Unlock()

	if !unsynced {
		if err := e.store.Delete(ctx, e.userId, id); err != nil {
			return err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	entries := e.entries[:0]
	for _, entry := range e.entries {
		if entry.Post.Id != id {
			entries = append(entries, entry)
		}
	}
	e.entries = entries
	if e.selectedId == id {
		e.selectedId = ""
		e.draft = Draft{}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
