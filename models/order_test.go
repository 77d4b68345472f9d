package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelane/storefront-api/utils"
)

var (
	admin    = Actor{UserID: "staff-1", Role: RoleAdmin}
	owner    = Actor{UserID: "user-1", Role: RoleUser}
	stranger = Actor{UserID: "user-2", Role: RoleUser}
	sysActor = Actor{IsSystem: true}
)

func orderIn(status OrderStatus) *Order {
	return &Order{UserID: "user-1", Status: status}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var derr *utils.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, code, derr.Code)
}

func TestPendingToPaid(t *testing.T) {
	assert.NoError(t, CanTransition(orderIn(OrderStatusPending), OrderStatusPaid, sysActor))
	assert.NoError(t, CanTransition(orderIn(OrderStatusPending), OrderStatusPaid, admin))

	// The owner cannot mark their own order paid.
	err := CanTransition(orderIn(OrderStatusPending), OrderStatusPaid, owner)
	assertCode(t, err, utils.CodeForbidden)
}

func TestPendingToCancelled(t *testing.T) {
	assert.NoError(t, CanTransition(orderIn(OrderStatusPending), OrderStatusCancelled, owner))
	assert.NoError(t, CanTransition(orderIn(OrderStatusPending), OrderStatusCancelled, admin))

	err := CanTransition(orderIn(OrderStatusPending), OrderStatusCancelled, stranger)
	assertCode(t, err, utils.CodeForbidden)
}

func TestPaidTransitionsAreAdminOnly(t *testing.T) {
	assert.NoError(t, CanTransition(orderIn(OrderStatusPaid), OrderStatusShipped, admin))
	assert.NoError(t, CanTransition(orderIn(OrderStatusPaid), OrderStatusCancelled, admin))

	err := CanTransition(orderIn(OrderStatusPaid), OrderStatusCancelled, owner)
	assertCode(t, err, utils.CodeForbidden)

	err = CanTransition(orderIn(OrderStatusPaid), OrderStatusShipped, sysActor)
	assertCode(t, err, utils.CodeForbidden)
}

func TestShippedToDelivered(t *testing.T) {
	assert.NoError(t, CanTransition(orderIn(OrderStatusShipped), OrderStatusDelivered, admin))

	err := CanTransition(orderIn(OrderStatusShipped), OrderStatusDelivered, owner)
	assertCode(t, err, utils.CodeForbidden)
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	targets := []OrderStatus{
		OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	}
	for _, from := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		for _, to := range targets {
			err := CanTransition(orderIn(from), to, admin)
			assertCode(t, err, utils.CodeInvalidTransition)
		}
	}
}

func TestIllegalEdgesBeatAuthorization(t *testing.T) {
	// Even an admin cannot skip states.
	err := CanTransition(orderIn(OrderStatusPending), OrderStatusShipped, admin)
	assertCode(t, err, utils.CodeInvalidTransition)

	err = CanTransition(orderIn(OrderStatusPending), OrderStatusDelivered, admin)
	assertCode(t, err, utils.CodeInvalidTransition)

	err = CanTransition(orderIn(OrderStatusShipped), OrderStatusCancelled, admin)
	assertCode(t, err, utils.CodeInvalidTransition)
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, status)

	_, err = ParseOrderStatus("teleported")
	assert.Error(t, err)
}
