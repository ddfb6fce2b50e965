package middleware_test

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/models"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/repository"
)

// Implementaciones en memoria de los stores, con la misma semántica que
// los repositorios de Postgres (incluida la atomicidad de los códigos de
// un solo uso). Permiten probar el core sin base de datos real.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User // email -> user
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (s *fakeUserStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return repository.ErrDuplicate
	}
	u := *user
	s.users[user.Email] = &u
	return nil
}

func (s *fakeUserStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[email]
	if !exists {
		return nil, repository.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (s *fakeUserStore) GetUserById(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			u := *user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) GetAllUsers() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := []models.User{}
	for _, user := range s.users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *fakeUserStore) UpdateProfile(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for email, stored := range s.users {
		if stored.ID == user.ID {
			if user.Email != email {
				if _, taken := s.users[user.Email]; taken {
					return repository.ErrDuplicate
				}
				delete(s.users, email)
			}
			stored.Email = user.Email
			stored.Password = user.Password
			s.users[user.Email] = stored
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeUserStore) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for email, stored := range s.users {
		if stored.ID == id {
			delete(s.users, email)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeUserStore) VerifyEmail(email, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[email]
	if !exists || token == "" || user.VerificationToken != token {
		return repository.ErrNotFound
	}
	user.IsVerified = true
	user.VerificationToken = ""
	return nil
}

func (s *fakeUserStore) SetMfaCode(email, code string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[email]
	if !exists {
		return repository.ErrNotFound
	}
	user.MfaSecret = code
	user.MfaCodeExpiry = &expiry
	return nil
}

func (s *fakeUserStore) ConsumeMfaCode(email, code string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[email]
	if !exists || code == "" || user.MfaSecret != code {
		return repository.ErrNotFound
	}
	if user.MfaCodeExpiry == nil || !user.MfaCodeExpiry.After(now) {
		return repository.ErrNotFound
	}
	user.MfaSecret = ""
	user.MfaCodeExpiry = nil
	return nil
}

// mutate modifica el usuario almacenado bajo el lock del store; lo usan
// los tests para habilitar MFA o manipular expiraciones
func (s *fakeUserStore) mutate(email string, fn func(*models.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, exists := s.users[email]; exists {
		fn(user)
	}
}

type fakePortfolioStore struct {
	mu         sync.Mutex
	portfolios map[string]*models.Portfolio // userID -> portfolio
}

func newFakePortfolioStore() *fakePortfolioStore {
	return &fakePortfolioStore{portfolios: make(map[string]*models.Portfolio)}
}

func clonePortfolio(p *models.Portfolio) *models.Portfolio {
	raw, _ := json.Marshal(p)
	clone := &models.Portfolio{}
	_ = json.Unmarshal(raw, clone)
	return clone
}

func (s *fakePortfolioStore) GetByUser(userID string) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.portfolios[userID]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return clonePortfolio(p), nil
}

func (s *fakePortfolioStore) Save(portfolio *models.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolios[portfolio.UserID] = clonePortfolio(portfolio)
	return nil
}

type fakeStrategyStore struct {
	mu         sync.Mutex
	strategies map[string]*models.Strategy // id -> strategy
}

func newFakeStrategyStore() *fakeStrategyStore {
	return &fakeStrategyStore{strategies: make(map[string]*models.Strategy)}
}

func (s *fakeStrategyStore) CreateStrategy(strategy *models.Strategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := *strategy
	s.strategies[strategy.ID] = &st
	return nil
}

func (s *fakeStrategyStore) GetUserStrategies(userID string) ([]models.Strategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	strategies := []models.Strategy{}
	for _, strategy := range s.strategies {
		if strategy.UserID == userID {
			strategies = append(strategies, *strategy)
		}
	}
	sort.Slice(strategies, func(i, j int) bool {
		return strategies[i].CreatedAt.Before(strategies[j].CreatedAt)
	})
	return strategies, nil
}

func (s *fakeStrategyStore) GetStrategy(userID, id string) (*models.Strategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	strategy, exists := s.strategies[id]
	if !exists || strategy.UserID != userID {
		return nil, repository.ErrNotFound
	}
	st := *strategy
	return &st, nil
}

func (s *fakeStrategyStore) UpdateStrategy(strategy *models.Strategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.strategies[strategy.ID]
	if !exists || stored.UserID != strategy.UserID {
		return repository.ErrNotFound
	}
	st := *strategy
	s.strategies[strategy.ID] = &st
	return nil
}

func (s *fakeStrategyStore) DeleteStrategy(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.strategies[id]
	if !exists || stored.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.strategies, id)
	return nil
}

type fakeTradeStore struct {
	mu     sync.Mutex
	trades []models.Trade
}

func newFakeTradeStore() *fakeTradeStore {
	return &fakeTradeStore{}
}

func (s *fakeTradeStore) CreateTrade(trade *models.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = append(s.trades, *trade)
	return nil
}

func (s *fakeTradeStore) GetUserTrades(userID string) ([]models.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trades := []models.Trade{}
	for _, trade := range s.trades {
		if trade.UserID == userID {
			trades = append(trades, trade)
		}
	}
	// Mismo orden que el repositorio real: fecha de trade descendente
	sort.Slice(trades, func(i, j int) bool {
		return trades[i].TradeDate.After(trades[j].TradeDate)
	})
	return trades, nil
}

type sentMessage struct {
	To      string
	Subject string
	Body    string
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failErr error
}

func (n *fakeNotifier) Send(to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.failErr != nil {
		return n.failErr
	}
	n.sent = append(n.sent, sentMessage{To: to, Subject: subject, Body: body})
	return nil
}

func (n *fakeNotifier) lastMessage() (sentMessage, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.sent) == 0 {
		return sentMessage{}, false
	}
	return n.sent[len(n.sent)-1], true
}

var errSMTPDown = errors.New("smtp no disponible")
