package graphql

import (
	"context"
	"fmt"

	"taskbridge/internal/apperr"
	"taskbridge/internal/remote"
	"taskbridge/internal/service"
)

const mentionablesQuery = `
query ProjectMentionablesQuery($projectId: ID!, $projectMembersLimit: Int = null) {
  document(id: $projectId) {
    id
    members(first: $projectMembersLimit) {
      edges {
        node {
          id
          user {
            id
            handle
            display_name
          }
        }
      }
    }
    space {
      id
      memberships {
        id
        user {
          id
          handle
          display_name
        }
      }
    }
  }
}`

type mentionableUser struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
}

// ListMembers implements service.Service. Assignable members are the union
// of the project's space memberships and its direct members, de-duplicated
// by user id, space members first.
func (c *Client) ListMembers(ctx context.Context, projectID string) ([]service.Member, error) {
	result, err := c.api.GraphQL(ctx, "ProjectMentionablesQuery", mentionablesQuery, map[string]any{"projectId": projectID})
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, apperr.Validation(result.Message)
	}

	var payload struct {
		Document struct {
			Members struct {
				Edges []struct {
					Node *struct {
						User *mentionableUser `json:"user"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"members"`
			Space struct {
				Memberships []struct {
					User *mentionableUser `json:"user"`
				} `json:"memberships"`
			} `json:"space"`
		} `json:"document"`
	}
	if err := remote.Decode(result, &payload); err != nil {
		return nil, fmt.Errorf("malformed mentionables response: %w", err)
	}

	var users []*mentionableUser
	for _, membership := range payload.Document.Space.Memberships {
		users = append(users, membership.User)
	}
	for _, edge := range payload.Document.Members.Edges {
		if edge.Node != nil {
			users = append(users, edge.Node.User)
		}
	}

	seen := make(map[string]bool)
	var members []service.Member
	for _, user := range users {
		if user == nil || seen[user.ID] {
			continue
		}
		seen[user.ID] = true

		name := user.DisplayName
		if name == "" {
			name = user.Handle
		}
		members = append(members, service.Member{ID: user.ID, DisplayName: name})
	}
	return members, nil
}
