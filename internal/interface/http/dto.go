package handlers

import (
	"time"

	"github.com/samber/lo"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
)

type userView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type memberView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type groupView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Owner       memberView   `json:"owner"`
	Members     []memberView `json:"members"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type messageView struct {
	ID        string     `json:"id"`
	GroupID   string     `json:"group_id"`
	Sender    memberView `json:"sender"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func toUserView(u *entity.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toMemberView(u *entity.User) memberView {
	if u == nil {
		return memberView{}
	}
	return memberView{ID: u.ID, Name: u.Name}
}

func toGroupView(g *entity.Group) groupView {
	return groupView{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Owner:       toMemberView(g.Owner),
		Members: lo.Map(g.Members, func(u *entity.User, _ int) memberView {
			return toMemberView(u)
		}),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func toGroupViews(groups []*entity.Group) []groupView {
	return lo.Map(groups, func(g *entity.Group, _ int) groupView { return toGroupView(g) })
}

func toMessageView(m *entity.Message) messageView {
	return messageView{
		ID:        m.ID,
		GroupID:   m.GroupID,
		Sender:    toMemberView(m.Sender),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toMessageViews(messages []*entity.Message) []messageView {
	return lo.Map(messages, func(m *entity.Message, _ int) messageView { return toMessageView(m) })
}
