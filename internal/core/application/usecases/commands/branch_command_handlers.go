package commands

import (
	"context"
	"log/slog"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
)

type CreateBranchCommandHandler struct {
	uowFactory BranchUoWFactory
	logger     *slog.Logger
}

func NewCreateBranchCommandHandler(uowFactory BranchUoWFactory, logger *slog.Logger) CreateBranchCommandHandler {
	return CreateBranchCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "CreateBranchCommandHandler"),
	}
}

func (h *CreateBranchCommandHandler) Handle(ctx context.Context, cmd CreateBranchCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BranchRepository()
	resolver := branch.NewResolver(repo)

	allowed, err := resolver.CanCreateBranch(ctx, cmd.Principal())
	if err != nil {
		return kernel.UUID{}, err
	}
	if !allowed {
		return kernel.UUID{}, ErrBranchManagementDenied
	}

	var parent *branch.Branch
	if parentID := cmd.ParentID(); parentID != nil {
		if parent, err = repo.Get(ctx, *parentID); err != nil {
			return kernel.UUID{}, err
		}
		if !cmd.Principal().IsSuperuser() {
			home := cmd.Principal().BranchID()
			if home == nil || !parent.ID().IsEqual(*home) {
				return kernel.UUID{}, ErrBranchManagementDenied
			}
		}
	}

	b, err := branch.NewBranch(kernel.NewUUID(), cmd.Name(), cmd.Code(), parent)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = repo.Add(ctx, b); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	h.logger.InfoContext(ctx, "branch created",
		"branch_id", b.ID().String(), "code", b.Code(), "by", cmd.Principal().UserID())
	return b.ID(), nil
}

type DeleteBranchCommandHandler struct {
	uowFactory BranchUoWFactory
	logger     *slog.Logger
}

func NewDeleteBranchCommandHandler(uowFactory BranchUoWFactory, logger *slog.Logger) DeleteBranchCommandHandler {
	return DeleteBranchCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "DeleteBranchCommandHandler"),
	}
}

func (h *DeleteBranchCommandHandler) Handle(ctx context.Context, cmd DeleteBranchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BranchRepository()
	target, err := repo.Get(ctx, cmd.BranchID())
	if err != nil {
		return err
	}

	allowed, err := branch.NewResolver(repo).CanDeleteBranch(ctx, cmd.Principal(), target)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrBranchManagementDenied
	}

	children, err := repo.ListChildren(ctx, target.ID())
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return ErrBranchHasChildren
	}

	if err = repo.Delete(ctx, target.ID()); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "branch deleted",
		"branch_id", target.ID().String(), "by", cmd.Principal().UserID())
	return nil
}
