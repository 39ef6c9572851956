// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	addressBookTable = "address_book"
	settingsTable    = "settings"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildListEntriesQuery() (string, []any, error) {
	query, args, err := builder.
		Select("label", "address").
		From(addressBookTable).
		OrderBy("label").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSaveEntryQuery(label, address string) (string, []any, error) {
	query, args, err := builder.
		Insert(addressBookTable).
		Columns("label", "address").
		Values(label, address).
		Suffix("ON CONFLICT(label) DO UPDATE SET address = excluded.address").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteEntryQuery(label string) (string, []any, error) {
	query, args, err := builder.
		Delete(addressBookTable).
		Where(sq.Eq{"label": label}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildGetSettingQuery(name string) (string, []any, error) {
	query, args, err := builder.
		Select("value").
		From(settingsTable).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSetSettingQuery(name, value string) (string, []any, error) {
	query, args, err := builder.
		Insert(settingsTable).
		Columns("name", "value").
		Values(name, value).
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
