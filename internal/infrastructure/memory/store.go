// Package memory is an in-process backend for every repository. It is used
// for local development without Postgres and for tests that need real
// ownership scoping.
package memory

import (
	"sync"
	"time"

	"moneytracker/internal/domain/budget"
	"moneytracker/internal/domain/category"
	"moneytracker/internal/domain/savings"
	"moneytracker/internal/domain/subscription"
	"moneytracker/internal/domain/transaction"
	"moneytracker/internal/domain/user"
)

type Store struct {
	mu            sync.Mutex
	now           func() time.Time
	transactions  map[string]*transaction.Transaction
	budgets       map[string]*budget.Budget
	categories    map[string]*category.Category
	savings       map[string]*savings.SavingsGoal
	subscriptions map[string]*subscription.Subscription
	users         map[string]*user.User
}

func New() *Store {
	return &Store{
		now:           func() time.Time { return time.Now().UTC() },
		transactions:  map[string]*transaction.Transaction{},
		budgets:       map[string]*budget.Budget{},
		categories:    map[string]*category.Category{},
		savings:       map[string]*savings.SavingsGoal{},
		subscriptions: map[string]*subscription.Subscription{},
		users:         map[string]*user.User{},
	}
}

func (s *Store) Transactions() *TransactionRepository {
	return &TransactionRepository{s: s}
}

func (s *Store) Budgets() *BudgetRepository {
	return &BudgetRepository{s: s}
}

func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{s: s}
}

func (s *Store) Savings() *SavingsRepository {
	return &SavingsRepository{s: s}
}

func (s *Store) Subscriptions() *SubscriptionRepository {
	return &SubscriptionRepository{s: s}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}
