package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tableorder/internal/core/application/usecases/commands"
	"tableorder/internal/core/domain/model/delivery"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	state := trackedState(t, 77, 5)

	cmd, err := commands.NewCancelOrderCommand(77)
	require.NoError(t, err)

	repo := new(MockDeliveryStateRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryStateRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, int64(77)).Return(state, nil).Once(),
		repo.On("Update", mock.Anything, state).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, delivery.StatusCancelled, state.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCancelOrderCommand_Validation(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(0)
	assert.Error(t, err)

	assert.ErrorIs(t, commands.CancelOrderCommand{}.Validate(),
		commands.ErrCancelOrderCommandIsNotConstructed)
}
