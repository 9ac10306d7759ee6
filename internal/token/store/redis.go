package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"assetgate/internal/token"
	"assetgate/pkg/domain"
)

// RedisStore keeps the ledger of one token under a common prefix:
//
//	assetgate:<token>:balances       holder -> amount
//	assetgate:<token>:supply         amount
//	assetgate:<token>:frozen         holder -> "1"
//	assetgate:<token>:frozen_tokens  holder -> amount
//	assetgate:<token>:allowances     owner:spender -> amount
type RedisStore struct {
	client        *redis.Client
	balancesKey   string
	supplyKey     string
	frozenKey     string
	frozenTokKey  string
	allowancesKey string
}

// NewRedis constructs a store for the ledger of token.
func NewRedis(client *redis.Client, token domain.Address) *RedisStore {
	prefix := "assetgate:" + token.Hex()
	return &RedisStore{
		client:        client,
		balancesKey:   prefix + ":balances",
		supplyKey:     prefix + ":supply",
		frozenKey:     prefix + ":frozen",
		frozenTokKey:  prefix + ":frozen_tokens",
		allowancesKey: prefix + ":allowances",
	}
}

func (s *RedisStore) Balance(ctx context.Context, holder domain.Address) (uint64, error) {
	raw, err := s.client.HGet(ctx, s.balancesKey, holder.Hex()).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return parseAmount(raw)
}

func (s *RedisStore) TotalSupply(ctx context.Context) (uint64, error) {
	raw, err := s.client.Get(ctx, s.supplyKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return parseAmount(raw)
}

// Apply writes the whole update in a MULTI/EXEC transaction.
func (s *RedisStore) Apply(ctx context.Context, u token.Update) error {
	if u.IsEmpty() {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for holder, bal := range u.Balances {
			setOrDel(ctx, pipe, s.balancesKey, holder.Hex(), bal)
		}
		if len(u.Balances) > 0 {
			pipe.Set(ctx, s.supplyKey, strconv.FormatUint(u.TotalSupply, 10), 0)
		}
		for holder, f := range u.Freezes {
			if f.Address {
				pipe.HSet(ctx, s.frozenKey, holder.Hex(), "1")
			} else {
				pipe.HDel(ctx, s.frozenKey, holder.Hex())
			}
			setOrDel(ctx, pipe, s.frozenTokKey, holder.Hex(), f.Tokens)
		}
		for key, amount := range u.Allowances {
			setOrDel(ctx, pipe, s.allowancesKey, allowanceField(key), amount)
		}
		return nil
	})
	return err
}

func setOrDel(ctx context.Context, pipe redis.Pipeliner, key, field string, amount uint64) {
	if amount == 0 {
		pipe.HDel(ctx, key, field)
		return
	}
	pipe.HSet(ctx, key, field, strconv.FormatUint(amount, 10))
}

func (s *RedisStore) Balances(ctx context.Context) (map[domain.Address]uint64, error) {
	raw, err := s.client.HGetAll(ctx, s.balancesKey).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Address]uint64, len(raw))
	for field, value := range raw {
		holder, err := domain.ParseAddress(field)
		if err != nil {
			return nil, fmt.Errorf("balance field %q: %w", field, err)
		}
		amount, err := parseAmount(value)
		if err != nil {
			return nil, err
		}
		out[holder] = amount
	}
	return out, nil
}

func (s *RedisStore) Freezes(ctx context.Context) (map[domain.Address]token.Freeze, error) {
	var frozen, tokens *redis.MapStringStringCmd
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		frozen = pipe.HGetAll(ctx, s.frozenKey)
		tokens = pipe.HGetAll(ctx, s.frozenTokKey)
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Address]token.Freeze)
	for field := range frozen.Val() {
		holder, err := domain.ParseAddress(field)
		if err != nil {
			return nil, fmt.Errorf("frozen field %q: %w", field, err)
		}
		f := out[holder]
		f.Address = true
		out[holder] = f
	}
	for field, value := range tokens.Val() {
		holder, err := domain.ParseAddress(field)
		if err != nil {
			return nil, fmt.Errorf("frozen tokens field %q: %w", field, err)
		}
		amount, err := parseAmount(value)
		if err != nil {
			return nil, err
		}
		f := out[holder]
		f.Tokens = amount
		out[holder] = f
	}
	return out, nil
}

func (s *RedisStore) Allowances(ctx context.Context) (map[token.Allowance]uint64, error) {
	raw, err := s.client.HGetAll(ctx, s.allowancesKey).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[token.Allowance]uint64, len(raw))
	for field, value := range raw {
		key, err := parseAllowanceField(field)
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(value)
		if err != nil {
			return nil, err
		}
		out[key] = amount
	}
	return out, nil
}

func allowanceField(a token.Allowance) string {
	return a.Owner.Hex() + ":" + a.Spender.Hex()
}

func parseAllowanceField(field string) (token.Allowance, error) {
	owner, spender, ok := strings.Cut(field, ":")
	if !ok {
		return token.Allowance{}, fmt.Errorf("allowance field %q: missing separator", field)
	}
	o, err := domain.ParseAddress(owner)
	if err != nil {
		return token.Allowance{}, fmt.Errorf("allowance field %q: %w", field, err)
	}
	sp, err := domain.ParseAddress(spender)
	if err != nil {
		return token.Allowance{}, fmt.Errorf("allowance field %q: %w", field, err)
	}
	return token.Allowance{Owner: o, Spender: sp}, nil
}

func parseAmount(raw string) (uint64, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return v, nil
}

var _ token.BalanceStore = (*RedisStore)(nil)
