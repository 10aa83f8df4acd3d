package handlers

import (
	labRepoPkg "lablink/database/repository/lab"
	userRepoPkg "lablink/database/repository/user"
)

// HandlerBundle groups all endpoint handlers plus the repositories the auth
// middlewares need.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository
	LabRepo  labRepoPkg.LabRepository

	Ranking  *RankingHandler
	Orders   *OrderHandler
	Bids     *BidHandler
	Invoices *InvoiceHandler
	Labs     *LabHandler
	Users    *UserHandler
}
