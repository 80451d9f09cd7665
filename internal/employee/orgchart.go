package employee

// BuildOrgChart assembles the reporting tree from a code-sorted employee
// list. Exited employees are dropped; an employee whose manager is missing
// from the list surfaces as an additional root rather than disappearing.
func BuildOrgChart(employees []Employee) []OrgChartNode {
	byID := make(map[string]Employee, len(employees))
	for _, e := range employees {
		if e.Status == StatusExited {
			continue
		}
		byID[e.ID.String()] = e
	}

	children := make(map[string][]string)
	var roots []string
	for _, e := range employees {
		id := e.ID.String()
		if _, ok := byID[id]; !ok {
			continue
		}
		if e.ReportingManagerID == nil {
			roots = append(roots, id)
			continue
		}
		managerID := e.ReportingManagerID.String()
		if _, ok := byID[managerID]; !ok {
			roots = append(roots, id)
			continue
		}
		children[managerID] = append(children[managerID], id)
	}

	seen := make(map[string]bool, len(byID))

	var build func(id string) OrgChartNode
	build = func(id string) OrgChartNode {
		seen[id] = true
		e := byID[id]
		node := OrgChartNode{
			ID:           id,
			EmployeeCode: e.EmployeeCode,
			Name:         e.FullName(),
			Status:       e.Status,
		}
		for _, childID := range children[id] {
			// Cyclic rows would otherwise recurse forever; assignment
			// validation rejects cycles, this guards against bad data.
			if seen[childID] {
				continue
			}
			node.Reports = append(node.Reports, build(childID))
		}
		return node
	}

	nodes := make([]OrgChartNode, 0, len(roots))
	for _, id := range roots {
		if seen[id] {
			continue
		}
		nodes = append(nodes, build(id))
	}
	return nodes
}
