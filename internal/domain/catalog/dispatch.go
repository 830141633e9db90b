package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"storefront-cms/internal/domain/siteconfig"
)

// Request is one admin action as posted to /api/admin/{kind}.
type Request struct {
	Action string
	Entity json.RawMessage // the object under the kind's entity key
	ID     int             // optional, used by delete
}

// Dispatch routes an admin request to the matching mutation and returns the
// created, updated or deleted entity.
func (e *Editor) Dispatch(ctx context.Context, kind string, req Request) (any, error) {
	switch kind {
	case KindProducts:
		return run(ctx, req, e.CreateProduct, e.UpdateProduct, e.DeleteProduct)
	case KindCategories:
		return run(ctx, req, e.CreateCategory, e.UpdateCategory, e.DeleteCategory)
	case KindFarms:
		return run(ctx, req, e.CreateFarm, e.UpdateFarm, e.DeleteFarm)
	case KindSocialMedia:
		return run(ctx, req, e.CreateSocialLink, e.UpdateSocialLink, e.DeleteSocialLink)
	case KindPages:
		return run(ctx, req, e.CreatePage, e.UpdatePage, e.DeletePage)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func run[T siteconfig.Identifiable](
	ctx context.Context,
	req Request,
	create, update func(context.Context, T) (T, error),
	remove func(context.Context, int) (T, error),
) (any, error) {
	switch req.Action {
	case ActionCreate:
		item, err := decodeEntity[T](req.Entity)
		if err != nil {
			return nil, err
		}
		return create(ctx, item)

	case ActionUpdate:
		item, err := decodeEntity[T](req.Entity)
		if err != nil {
			return nil, err
		}
		if item.Identifier() <= 0 {
			return nil, invalid("id is required")
		}
		return update(ctx, item)

	case ActionDelete:
		id := req.ID
		if id == 0 && hasEntity(req.Entity) {
			item, err := decodeEntity[T](req.Entity)
			if err != nil {
				return nil, err
			}
			id = item.Identifier()
		}
		if id <= 0 {
			return nil, invalid("id is required")
		}
		return remove(ctx, id)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
}

func hasEntity(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func decodeEntity[T any](raw json.RawMessage) (T, error) {
	var item T
	if !hasEntity(raw) {
		return item, invalid("entity is required")
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, invalid("malformed entity: %v", err)
	}
	return item, nil
}
