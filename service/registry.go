package service

import (
	"fmt"

	"bankist/model"
	"bankist/repository"
)

// SeedRegistry hashes the seed pins and builds the account registry from them.
func SeedRegistry(seeds []repository.SeedAccount, auth *AuthService) (*repository.AccountRepository, error) {
	accounts := make([]*model.Account, 0, len(seeds))
	for _, seed := range seeds {
		hash, err := auth.HashPin(seed.Pin)
		if err != nil {
			return nil, fmt.Errorf("hash pin for %q: %w", seed.Owner, err)
		}
		accounts = append(accounts, &model.Account{
			Owner:        seed.Owner,
			PinHash:      hash,
			InterestRate: seed.InterestRate,
			Currency:     seed.Currency,
			Locale:       seed.Locale,
			Movements:    seed.Movements,
		})
	}
	return repository.NewAccountRepository(accounts)
}
