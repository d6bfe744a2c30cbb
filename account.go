// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import "fmt"

// AccountType distinguishes the kinds of account a resource can belong
// to.
type AccountType string

// Account types known to the GitHub API.
const (
	AccountTypeUser         AccountType = "User"
	AccountTypeOrganization AccountType = "Organization"
	AccountTypeBot          AccountType = "Bot"
)

// Account is an organization, user or bot on GitHub.
//
// Accounts have a unique numeric id that is stable for the lifetime of
// the account and a login which is human readable but can be changed by
// the owner.
type Account struct {
	// Login of the account.
	Login string `json:"login"`

	// Unique id of the account.
	ID int64 `json:"id"`

	// Type of the account.
	Type AccountType `json:"type"`
}

// String implements [fmt.Stringer].
func (a Account) String() string {
	return a.Login
}

var _ fmt.Stringer = (*Account)(nil)
