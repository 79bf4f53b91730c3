package graphql

import (
	"context"
	"fmt"
	"strings"

	"taskbridge/internal/apperr"
	"taskbridge/internal/remote"
	"taskbridge/internal/service"
)

// SpacesPerPage is how many workspace and folder entries a spaces page holds.
const SpacesPerPage = 10

const pageSize = 20

const recentProjectsQuery = `
query RecentProjectsQuery($first: Int, $after: String, $filterby: RecentProjectsFiltering) {
  recentProjects(first: $first, after: $after, filterby: $filterby) {
    edges {
      cursor
      node {
        id
        info
      }
    }
  }
}`

const spaceDocumentsQuery = `
query SpaceDocuments($spaceID: ID, $orderby: [DocumentOrdering], $filterby: DocumentFiltering, $first: Int, $after: String) {
  membership(space_id: $spaceID) {
    id
    space {
      id
      documents_v2(first: $first, after: $after, orderby: $orderby, filterby: $filterby) {
        edges {
          node {
            id
            info
          }
        }
      }
    }
  }
}`

type documentEdge struct {
	Node struct {
		ID   string `json:"id"`
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
	} `json:"node"`
}

// ListProjects implements service.Service.
func (c *Client) ListProjects(ctx context.Context, spaceID string) ([]service.Project, error) {
	if spaceID == "" {
		variables := map[string]any{
			"filterby": map[string]any{"member": "project-only"},
			"first":    pageSize,
			"after":    nil,
		}
		result, err := c.api.GraphQL(ctx, "RecentProjectsQuery", recentProjectsQuery, variables)
		if err != nil {
			return nil, err
		}
		if !result.OK {
			return nil, apperr.Validation(result.Message)
		}

		var payload struct {
			RecentProjects struct {
				Edges []documentEdge `json:"edges"`
			} `json:"recentProjects"`
		}
		if err := remote.Decode(result, &payload); err != nil {
			return nil, fmt.Errorf("malformed projects response: %w", err)
		}
		return projectsFromEdges(payload.RecentProjects.Edges), nil
	}

	variables := map[string]any{
		"spaceID":  spaceID,
		"filterby": map[string]any{"archived": false, "templated": false},
		"first":    pageSize,
		"after":    nil,
		"orderby": []any{
			map[string]any{"sort": "pinned_at", "direction": "desc"},
			map[string]any{"sort": "updated_at", "direction": "desc"},
		},
	}
	result, err := c.api.GraphQL(ctx, "SpaceDocuments", spaceDocumentsQuery, variables)
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, apperr.Validation(result.Message)
	}

	var payload struct {
		Membership struct {
			Space struct {
				DocumentsV2 struct {
					Edges []documentEdge `json:"edges"`
				} `json:"documents_v2"`
			} `json:"space"`
		} `json:"membership"`
	}
	if err := remote.Decode(result, &payload); err != nil {
		return nil, fmt.Errorf("malformed space documents response: %w", err)
	}
	return projectsFromEdges(payload.Membership.Space.DocumentsV2.Edges), nil
}

func projectsFromEdges(edges []documentEdge) []service.Project {
	projects := make([]service.Project, 0, len(edges))
	for _, edge := range edges {
		projects = append(projects, service.Project{ID: edge.Node.ID, Title: edge.Node.Info.Title})
	}
	return projects
}

const membershipsQuery = `
query Memberships($filterby: MembershipFiltering) {
  memberships(filterby: $filterby) {
    totalCount
    edges {
      node {
        id
        order
        space {
          id
          name
          is_subspace
          parent_membership {
            id
            space {
              id
              name
            }
          }
        }
      }
    }
  }
}`

type membershipEdge struct {
	Node struct {
		Space struct {
			ID               string `json:"id"`
			Name             string `json:"name"`
			ParentMembership *struct {
				Space struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"space"`
			} `json:"parent_membership"`
		} `json:"space"`
	} `json:"node"`
}

// ListSpaces implements service.Service. Workspaces come first, each followed
// by its folders, sliced SpacesPerPage entries per page.
func (c *Client) ListSpaces(ctx context.Context, page int) ([]service.Space, error) {
	spaceEdges, err := c.memberships(ctx, map[string]any{
		"membershipType": "space",
		"archived":       false,
	})
	if err != nil {
		return nil, err
	}

	spaceIDs := make([]string, 0, len(spaceEdges))
	for _, edge := range spaceEdges {
		spaceIDs = append(spaceIDs, edge.Node.Space.ID)
	}

	folderEdges, err := c.memberships(ctx, map[string]any{
		"membershipType": "subspace",
		"parentSpaceIds": spaceIDs,
		"archived":       false,
	})
	if err != nil {
		return nil, err
	}

	var all []service.Space
	for _, spaceEdge := range spaceEdges {
		space := spaceEdge.Node.Space
		all = append(all, service.Space{ID: space.ID, Name: space.Name})
		for _, folderEdge := range folderEdges {
			folder := folderEdge.Node.Space
			if folder.ParentMembership != nil && folder.ParentMembership.Space.ID == space.ID {
				all = append(all, service.Space{
					ID:   folder.ID,
					Name: folder.ParentMembership.Space.Name + " > " + folder.Name,
				})
			}
		}
	}

	start := page * SpacesPerPage
	if start >= len(all) {
		return nil, nil
	}
	end := start + SpacesPerPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (c *Client) memberships(ctx context.Context, filterby map[string]any) ([]membershipEdge, error) {
	result, err := c.api.GraphQL(ctx, "Memberships", membershipsQuery, map[string]any{"filterby": filterby})
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, apperr.Validation(result.Message)
	}

	var payload struct {
		Memberships struct {
			Edges []membershipEdge `json:"edges"`
		} `json:"memberships"`
	}
	if err := remote.Decode(result, &payload); err != nil {
		return nil, fmt.Errorf("malformed memberships response: %w", err)
	}
	return payload.Memberships.Edges, nil
}

const blocksQuery = `
query BlocksQuery($projectId: ID!) {
  document(id: $projectId) {
    id
    contents
  }
}`

type blockNode struct {
	Format struct {
		Node string `json:"node"`
	} `json:"format"`
	Text struct {
		Ops []struct {
			Insert any `json:"insert"`
		} `json:"ops"`
	} `json:"text"`
}

// ListBlocks implements service.Service. Blocks are the h1/h2 heading nodes
// of the project document.
func (c *Client) ListBlocks(ctx context.Context, projectID string) ([]service.Block, error) {
	result, err := c.api.GraphQL(ctx, "BlocksQuery", blocksQuery, map[string]any{"projectId": projectID})
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, apperr.Validation(result.Message)
	}

	var payload struct {
		Document struct {
			Contents struct {
				Nodes map[string]blockNode `json:"nodes"`
			} `json:"contents"`
		} `json:"document"`
	}
	if err := remote.Decode(result, &payload); err != nil {
		return nil, fmt.Errorf("malformed blocks response: %w", err)
	}
	if payload.Document.Contents.Nodes == nil {
		return nil, apperr.Validation("failed to get all blocks")
	}

	var blocks []service.Block
	for id, node := range payload.Document.Contents.Nodes {
		if node.Format.Node == "h1" || node.Format.Node == "h2" {
			blocks = append(blocks, service.Block{ID: id, Title: deltaToString(node)})
		}
	}
	return blocks, nil
}

// deltaToString concatenates the string inserts of a node's delta ops.
func deltaToString(node blockNode) string {
	var sb strings.Builder
	for _, op := range node.Text.Ops {
		if s, ok := op.Insert.(string); ok {
			sb.WriteString(s)
		}
	}
	return strings.TrimSpace(sb.String())
}
