package accounts

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Groups manages group membership and capability grants. It doubles as the
// GrantStore queried by the Authorizer.
type Groups interface {
	repository.Repository[*Group]
	GrantStore

	GetByName(ctx context.Context, name string) (*Group, error)

	AddMember(ctx context.Context, groupID, accountID uuid.UUID) error
	RemoveMember(ctx context.Context, groupID, accountID uuid.UUID) error
	MemberGroups(ctx context.Context, accountID uuid.UUID) ([]*Group, error)

	GrantToAccount(ctx context.Context, accountID uuid.UUID, capability string) error
	RevokeFromAccount(ctx context.Context, accountID uuid.UUID, capability string) error
	GrantToGroup(ctx context.Context, groupID uuid.UUID, capability string) error
	RevokeFromGroup(ctx context.Context, groupID uuid.UUID, capability string) error

	AccountCapabilities(ctx context.Context, accountID uuid.UUID) ([]string, error)
}

type groupsRepo struct {
	repository.Repository[*Group]
	db *bun.DB
}

var (
	_ Groups     = (*groupsRepo)(nil)
	_ GrantStore = (*groupsRepo)(nil)
)

func NewGroupsRepository(db *bun.DB) Groups {
	repo := repository.NewRepository[*Group](db, repository.ModelHandlers[*Group]{
		NewRecord: func() *Group { return &Group{} },
		GetID: func(g *Group) uuid.UUID {
			if g == nil {
				return uuid.Nil
			}
			return g.ID
		},
		SetID: func(g *Group, id uuid.UUID) {
			if g != nil {
				g.ID = id
			}
		},
		GetIdentifier: func() string {
			return "name"
		},
	})

	return &groupsRepo{
		Repository: repo,
		db:         db,
	}
}

func (r *groupsRepo) GetByName(ctx context.Context, name string) (*Group, error) {
	record := &Group{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"name": name})
		}
		return nil, err
	}
	return record, nil
}

func (r *groupsRepo) AddMember(ctx context.Context, groupID, accountID uuid.UUID) error {
	link := &AccountGroup{AccountID: accountID, GroupID: groupID}
	_, err := r.db.NewInsert().
		Model(link).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	return err
}

func (r *groupsRepo) RemoveMember(ctx context.Context, groupID, accountID uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*AccountGroup)(nil)).
		Where("group_id = ? AND account_id = ?", groupID, accountID).
		Exec(ctx)
	return err
}

func (r *groupsRepo) MemberGroups(ctx context.Context, accountID uuid.UUID) ([]*Group, error) {
	var groups []*Group
	err := r.db.NewSelect().
		Model(&groups).
		Join("JOIN account_groups AS accgrp ON accgrp.group_id = grp.id").
		Where("accgrp.account_id = ?", accountID).
		Order("grp.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupsRepo) GrantToAccount(ctx context.Context, accountID uuid.UUID, capability string) error {
	grant := &AccountCapability{AccountID: accountID, Capability: capability}
	_, err := r.db.NewInsert().
		Model(grant).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	return err
}

func (r *groupsRepo) RevokeFromAccount(ctx context.Context, accountID uuid.UUID, capability string) error {
	_, err := r.db.NewDelete().
		Model((*AccountCapability)(nil)).
		Where("account_id = ? AND capability = ?", accountID, capability).
		Exec(ctx)
	return err
}

func (r *groupsRepo) GrantToGroup(ctx context.Context, groupID uuid.UUID, capability string) error {
	grant := &GroupCapability{GroupID: groupID, Capability: capability}
	_, err := r.db.NewInsert().
		Model(grant).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	return err
}

func (r *groupsRepo) RevokeFromGroup(ctx context.Context, groupID uuid.UUID, capability string) error {
	_, err := r.db.NewDelete().
		Model((*GroupCapability)(nil)).
		Where("group_id = ? AND capability = ?", groupID, capability).
		Exec(ctx)
	return err
}

// HasDirectGrant implements GrantStore.
func (r *groupsRepo) HasDirectGrant(ctx context.Context, accountID string, capability string) (bool, error) {
	return r.db.NewSelect().
		Model((*AccountCapability)(nil)).
		Where("account_id = ? AND capability = ?", accountID, capability).
		Exists(ctx)
}

// HasGroupGrant implements GrantStore.
func (r *groupsRepo) HasGroupGrant(ctx context.Context, accountID string, capability string) (bool, error) {
	return r.db.NewSelect().
		Model((*GroupCapability)(nil)).
		Join("JOIN account_groups AS accgrp ON accgrp.group_id = grpcap.group_id").
		Where("accgrp.account_id = ? AND grpcap.capability = ?", accountID, capability).
		Exists(ctx)
}

// AccountCapabilities returns the union of direct and group-inherited grants,
// sorted and deduplicated.
func (r *groupsRepo) AccountCapabilities(ctx context.Context, accountID uuid.UUID) ([]string, error) {
	var caps []string
	err := r.db.NewRaw(`
		SELECT capability FROM account_capabilities WHERE account_id = ?
		UNION
		SELECT grpcap.capability
		FROM group_capabilities AS grpcap
		JOIN account_groups AS accgrp ON accgrp.group_id = grpcap.group_id
		WHERE accgrp.account_id = ?
		ORDER BY capability ASC;
	`, accountID, accountID).Scan(ctx, &caps)
	if err != nil {
		return nil, err
	}
	return caps, nil
}
