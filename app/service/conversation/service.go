package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"shopfront/app/config"
	"shopfront/app/service/cart"
	"shopfront/app/service/catalog"
	"shopfront/app/service/intent"
	"shopfront/app/service/llm"
	"shopfront/app/service/refer"
	"shopfront/app/service/relevance"

	"github.com/elliotchance/pie/v2"
	"github.com/google/uuid"
	"github.com/samber/do"
)

// ErrTurnInFlight is returned when a session already has a turn being
// processed. Turns are strictly serialized per session.
var ErrTurnInFlight = errors.New("a previous turn is still being processed")

const (
	apologyReply    = "Sorry, I'm having trouble answering right now. Please try again in a moment."
	clarifyReply    = "I'm not sure which product you mean. Could you name it, or say something like \"the first one\"?"
	emptyCartRemove = "There's nothing matching that in your suggestions, so I haven't changed your cart."
)

type Service struct {
	cfg        *config.Config
	catalogSvc *catalog.Service
	cartSvc    *cart.Service
	invoker    *llm.Invoker
	scorer     relevance.Scorer

	mu       sync.RWMutex
	sessions map[string]*Session
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Service{
		cfg:        cfg,
		catalogSvc: do.MustInvoke[*catalog.Service](di),
		cartSvc:    do.MustInvoke[*cart.Service](di),
		invoker:    do.MustInvoke[*llm.Invoker](di),
		scorer: relevance.Scorer{
			Threshold: cfg.Assistant.RelevanceThreshold,
			Limit:     cfg.Assistant.MaxSuggestions,
		},
		sessions: make(map[string]*Session),
	}, nil
}

func (s *Service) NewSession() *Session {
	session := &Session{ID: uuid.NewString()}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

func (s *Service) Session(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	return session, ok
}

// ProcessMessage runs one full turn. Cart commands are handled locally and
// never wait on a model; everything else goes through the provider invoker.
// Every path appends exactly one assistant or error turn, which is returned.
func (s *Service) ProcessMessage(ctx context.Context, session *Session, text string) (Turn, error) {
	if !session.mu.TryLock() {
		return Turn{}, ErrTurnInFlight
	}
	defer session.mu.Unlock()

	session.appendTurn(Turn{
		Role:      RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	})
	session.profile.recordSearch(text, s.cfg.Assistant.SearchWindow)

	var reply Turn

	switch intent.ClassifyAction(text) {
	case intent.ActionAdd:
		reply = s.mutateCart(session, text, true)
	case intent.ActionRemove:
		reply = s.mutateCart(session, text, false)
	default:
		reply = s.converse(ctx, session, text)
	}

	session.appendTurn(reply)

	return reply, nil
}

func (s *Service) mutateCart(session *Session, text string, add bool) Turn {
	resolved := refer.Resolve(text, session.lastSuggested)
	if len(resolved) == 0 {
		if add {
			return assistantTurn(clarifyReply)
		}

		return assistantTurn(emptyCartRemove)
	}

	// Each resolved product is applied independently: one miss must not
	// block the rest of the batch.
	var applied []string

	for _, product := range resolved {
		current, err := s.catalogSvc.GetByID(product.ID)
		if err != nil {
			slog.Warn("Resolved product missing from catalog",
				"product_id", product.ID,
				"product_name", product.Name,
				"error", err,
			)
			continue
		}

		if add {
			s.cartSvc.AddItem(session.ID, current)
		} else {
			s.cartSvc.RemoveItem(session.ID, current.ID)
		}

		applied = append(applied, current.Name)
	}

	if len(applied) == 0 {
		return assistantTurn(clarifyReply)
	}

	snapshot := s.cartSvc.Snapshot(session.ID)

	verb := "Added"
	preposition := "to"
	if !add {
		verb = "Removed"
		preposition = "from"
	}

	return assistantTurn(fmt.Sprintf("%s %s %s your cart. You now have %d %s in it.",
		verb, strings.Join(applied, " and "), preposition,
		snapshot.TotalItems, pluralize(snapshot.TotalItems, "item")))
}

func (s *Service) converse(ctx context.Context, session *Session, text string) Turn {
	seeking := intent.IsProductSeeking(text)

	var matches []relevance.ScoredProduct
	if seeking {
		matches = s.scorer.Rank(text, s.catalogSvc.All(), relevance.Profile{
			Interests: session.profile.Interests,
			PriceMin:  session.profile.PriceMin,
			PriceMax:  session.profile.PriceMax,
		})
	}

	prompt := composePrompt(promptInput{
		Profile:        session.profile,
		Cart:           s.cartSvc.Snapshot(session.ID),
		Context:        buildContext(session.turns, session.lastSuggested, s.cfg.Assistant.ContextTurns),
		IncludeCatalog: seeking,
		Catalog:        s.catalogSvc.All(),
		Query:          text,
	})

	replyText, err := s.invoker.Complete(ctx, prompt)
	if err != nil {
		slog.Error("All completion providers failed", "error", err)

		return Turn{
			Role:      RoleError,
			Content:   apologyReply,
			Timestamp: time.Now(),
		}
	}

	reply := assistantTurn(replyText)

	if seeking && len(matches) > 0 {
		products := pie.Map(matches, func(m relevance.ScoredProduct) catalog.Product {
			return m.Product
		})

		reply.Suggestions = products
		reply.Suggested = true

		session.lastSuggested = products
		for _, product := range products {
			session.profile.recordInterest(product.Category, s.cfg.Assistant.InterestWindow)
		}
	}

	return reply
}

func assistantTurn(text string) Turn {
	return Turn{
		Role:      RoleAssistant,
		Content:   text,
		Timestamp: time.Now(),
	}
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}

	return word + "s"
}
