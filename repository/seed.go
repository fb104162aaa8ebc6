package repository

import (
	"time"

	"bankist/model"

	"github.com/shopspring/decimal"
)

// SeedAccount is the plain-pin form of an account before it enters the registry.
type SeedAccount struct {
	Owner        string
	Pin          int
	InterestRate decimal.Decimal
	Currency     string
	Locale       string
	Movements    []model.Movement
}

func movement(amount, date string) model.Movement {
	at, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		panic(err)
	}
	return model.Movement{Amount: decimal.RequireFromString(amount), Date: at}
}

// DefaultSeed returns the demo accounts the process starts with.
func DefaultSeed() []SeedAccount {
	return []SeedAccount{
		{
			Owner:        "Alena Fleming",
			Pin:          1111,
			InterestRate: decimal.RequireFromString("1.2"),
			Currency:     "EUR",
			Locale:       "pt-PT",
			Movements: []model.Movement{
				movement("200", "2019-11-18T21:31:17.178Z"),
				movement("455.23", "2019-12-23T07:42:02.383Z"),
				movement("-306.5", "2020-01-28T09:15:04.904Z"),
				movement("25000", "2020-04-01T10:17:24.185Z"),
				movement("-642.21", "2020-05-08T14:11:59.604Z"),
				movement("-133.9", "2020-05-27T17:01:17.194Z"),
				movement("79.97", "2020-07-11T23:36:17.929Z"),
				movement("1300", "2020-07-12T10:51:36.790Z"),
			},
		},
		{
			Owner:        "Maisey Charlton",
			Pin:          2222,
			InterestRate: decimal.RequireFromString("1.5"),
			Currency:     "USD",
			Locale:       "en-US",
			Movements: []model.Movement{
				movement("5000", "2019-11-01T13:15:33.035Z"),
				movement("3400", "2019-11-30T09:48:16.867Z"),
				movement("-150", "2019-12-25T06:04:23.907Z"),
				movement("-790", "2020-01-25T14:18:46.235Z"),
				movement("-3210", "2020-02-05T16:33:06.386Z"),
				movement("-1000", "2022-02-16T14:43:26.374Z"),
				movement("8500", "2022-02-19T18:49:59.371Z"),
				movement("-30", "2022-02-22T12:01:20.894Z"),
			},
		},
		{
			Owner:        "Bradley Smith",
			Pin:          3333,
			InterestRate: decimal.RequireFromString("0.7"),
			Currency:     "USD",
			Locale:       "en-US",
			Movements: []model.Movement{
				movement("200", "2019-11-01T13:15:33.035Z"),
				movement("-200", "2019-11-30T09:48:16.867Z"),
				movement("340", "2019-12-25T06:04:23.907Z"),
				movement("-300", "2020-01-25T14:18:46.235Z"),
				movement("-20", "2020-02-05T16:33:06.386Z"),
				movement("50", "2022-02-16T14:43:26.374Z"),
				movement("400", "2022-02-19T18:49:59.371Z"),
				movement("-460", "2022-12-22T12:01:20.894Z"),
			},
		},
		{
			Owner:        "Sarah Louise Newton",
			Pin:          4444,
			InterestRate: decimal.RequireFromString("1"),
			Currency:     "USD",
			Locale:       "en-US",
			Movements: []model.Movement{
				movement("430", "2019-11-01T13:15:33.035Z"),
				movement("1000", "2019-11-30T09:48:16.867Z"),
				movement("700", "2019-12-25T06:04:23.907Z"),
				movement("50", "2020-01-25T14:18:46.235Z"),
				movement("90", "2022-11-22T19:09:35.894Z"),
			},
		},
	}
}
