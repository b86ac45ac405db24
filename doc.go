// Package positions tracks the open positions of a portfolio from the buy
// and sell orders executed on it.
//
// The Ledger is the core: it records orders, maintains one Position per
// instrument with its quantity-weighted average price, and keeps the full
// order history in arrival order. Orders that cannot be applied (selling
// what is not held, or more than is held) are rejected without touching the
// ledger.
//
// Around the ledger, the package provides:
//   - Quantity and Money, exact decimal types so that selling a position in
//     full lands on an exact zero.
//   - A JSONL journal of orders and resets, replayed to rebuild a ledger.
//   - Snapshots of the ledger state, queryable with JSONPath.
//
// The `pos` command line tool is built on top of this package.
package positions
