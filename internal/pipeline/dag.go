package pipeline

import "lake-demo/internal/domain"

// ResolveExecutionOrder computes a topological ordering of workflow tasks
// using Kahn's algorithm, returning levels of task names whose dependencies
// are satisfied by earlier levels. Returns an error on cycles, self-, or
// unknown dependencies.
func ResolveExecutionOrder(tasks []Task) ([][]string, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	known := make(map[string]struct{}, len(tasks))
	inDegree := make(map[string]int, len(tasks))
	dependents := make(map[string][]string)

	for _, t := range tasks {
		if _, dup := known[t.Name]; dup {
			return nil, domain.ErrValidation("duplicate task: %s", t.Name)
		}
		known[t.Name] = struct{}{}
		inDegree[t.Name] = 0
	}

	for _, t := range tasks {
		for _, dep := range t.DependsOn {
			if _, ok := known[dep]; !ok {
				return nil, domain.ErrValidation("unknown dependency: %s", dep)
			}
			if dep == t.Name {
				return nil, domain.ErrValidation("self dependency: %s", t.Name)
			}
			dependents[dep] = append(dependents[dep], t.Name)
			inDegree[t.Name]++
		}
	}

	// Process by levels, preserving task declaration order within a level.
	var levels [][]string
	var queue []string
	for _, t := range tasks {
		if inDegree[t.Name] == 0 {
			queue = append(queue, t.Name)
		}
	}

	processed := 0
	for len(queue) > 0 {
		level := make([]string, len(queue))
		copy(level, queue)
		levels = append(levels, level)
		processed += len(level)

		ready := make(map[string]struct{})
		for _, name := range queue {
			for _, dep := range dependents[name] {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					ready[dep] = struct{}{}
				}
			}
		}
		queue = queue[:0]
		for _, t := range tasks {
			if _, ok := ready[t.Name]; ok {
				queue = append(queue, t.Name)
			}
		}
	}

	if processed != len(tasks) {
		return nil, domain.ErrValidation("cycle detected in task dependencies")
	}
	return levels, nil
}
