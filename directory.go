package ecs

// destroyTree destroys root and every live descendant, deepest-first, so a
// child is never transferred/destroyed against a table entry whose parent
// table has already been torn down. Grounded on original_source's
// entities.rs delete/delete_internal recursive-delete walk (see DESIGN.md).
func destroyTree(sto Storage, root Entity) error {
	order, err := collectDescendants(sto, root)
	if err != nil {
		return err
	}
	// Reverse so leaves are destroyed before their ancestors.
	for i := len(order) - 1; i >= 0; i-- {
		if err := sto.DestroyEntities(order[i]); err != nil {
			return err
		}
	}
	return nil
}

// collectDescendants walks root's children breadth-first and returns
// root followed by every live descendant in visitation order.
func collectDescendants(sto Storage, root Entity) ([]Entity, error) {
	result := []Entity{root}
	queue := []Entity{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		real, ok := current.(*entity)
		if !ok {
			continue
		}
		for _, childID := range real.relationships.children {
			child, err := sto.Entity(int(childID))
			if err != nil || !child.Valid() {
				continue
			}
			result = append(result, child)
			queue = append(queue, child)
		}
	}
	return result, nil
}
