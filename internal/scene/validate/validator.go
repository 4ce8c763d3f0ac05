// Package validate checks structural and referential correctness of world
// documents. It never panics and never stops at the first problem: every
// check contributes to a complete, path-addressed error list.
//
// Validation only reports. The wire package is the boundary that turns a
// failed report into an error; code that hand-builds documents outside the
// serializer is responsible for calling Document itself before trusting the
// model invariants.
package validate

import (
	"math"

	"github.com/dshills/scenestorm/internal/scene"
)

// context carries shared state through one recursive validation pass.
type context struct {
	// assetIDs is the resolved asset id set for reference checks.
	assetIDs map[string]struct{}

	// seen accumulates node ids across the entire descent, siblings and
	// cousins included, so a duplicate anywhere in the forest is reported
	// at its second occurrence in document order.
	seen map[string]struct{}
}

// Document validates a whole world document and returns the collected
// error list. A nil or error-free result from AsError means the document
// satisfies every model invariant.
func Document(doc *scene.Document) *Errors {
	errs := &Errors{}
	if doc == nil {
		errs.Add("document", "must be a record")
		return errs
	}

	ctx := &context{
		assetIDs: assetIDSet(doc.Assets, errs),
		seen:     make(map[string]struct{}),
	}

	if doc.Nodes == nil {
		errs.Add("nodes", "must be an array")
		return errs
	}
	for i, n := range doc.Nodes {
		node(indexPath("nodes", i), n, ctx, errs)
	}
	return errs
}

// assetIDSet validates the asset list and returns the resolvable id set.
// The set is built best-effort: an asset with an invalid uri still
// contributes its id, so node reference checks stay meaningful even when
// the asset list itself has problems.
func assetIDSet(assets []*scene.Asset, errs *Errors) map[string]struct{} {
	ids := make(map[string]struct{}, len(assets))
	for i, a := range assets {
		path := indexPath("assets", i)
		if a == nil {
			errs.Add(path, "must be a record")
			continue
		}
		if a.ID == "" {
			errs.Add(joinPath(path, "id"), "must be a non-empty string")
		} else if _, dup := ids[a.ID]; dup {
			errs.Addf(joinPath(path, "id"), "'%s' must be unique", a.ID)
		} else {
			ids[a.ID] = struct{}{}
		}
		if a.URI == "" {
			errs.Add(joinPath(path, "uri"), "must be a non-empty string")
		}
	}
	return ids
}

// node validates one node and recurses into its children with the shared
// traversal context.
func node(path string, n *scene.Node, ctx *context, errs *Errors) {
	if n == nil {
		errs.Add(path, "must be a record")
		return
	}

	if n.ID == "" {
		errs.Add(joinPath(path, "id"), "must be a non-empty string")
	} else if _, dup := ctx.seen[n.ID]; dup {
		errs.Addf(joinPath(path, "id"), "'%s' must be unique", n.ID)
	} else {
		ctx.seen[n.ID] = struct{}{}
	}

	if n.Transform != nil {
		transform(joinPath(path, "transform"), n.Transform, errs)
	}

	for i, c := range n.Components {
		cpath := indexPath(joinPath(path, "components"), i)
		if c.Type == "" {
			errs.Add(joinPath(cpath, "type"), "must be a non-empty string")
		}
	}

	if n.Asset != nil {
		apath := joinPath(path, "asset")
		switch {
		case n.Asset.AssetID == "":
			errs.Add(joinPath(apath, "assetId"), "must be a non-empty string")
		default:
			if _, ok := ctx.assetIDs[n.Asset.AssetID]; !ok {
				errs.Addf(apath, "references missing asset '%s'", n.Asset.AssetID)
			}
		}
	}

	for i, child := range n.Children {
		node(indexPath(joinPath(path, "children"), i), child, ctx, errs)
	}
}

// transform validates whichever transform sub-fields are present. Absent
// fields are left absent; defaults belong to consumers, not the model.
func transform(path string, t *scene.Transform, errs *Errors) {
	if t.Position != nil {
		vec3(joinPath(path, "position"), t.Position, errs)
	}
	if t.Rotation != nil {
		quat(joinPath(path, "rotation"), t.Rotation, errs)
	}
	if t.Scale != nil {
		vec3(joinPath(path, "scale"), t.Scale, errs)
	}
}

func vec3(path string, v *scene.Vec3, errs *Errors) {
	finite(joinPath(path, "x"), v.X, errs)
	finite(joinPath(path, "y"), v.Y, errs)
	finite(joinPath(path, "z"), v.Z, errs)
}

func quat(path string, q *scene.Quat, errs *Errors) {
	finite(joinPath(path, "x"), q.X, errs)
	finite(joinPath(path, "y"), q.Y, errs)
	finite(joinPath(path, "z"), q.Z, errs)
	finite(joinPath(path, "w"), q.W, errs)
}

func finite(path string, f float64, errs *Errors) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		errs.Add(path, "must be a finite number")
	}
}
