// ABOUTME: Users screen, shown only to roles that can manage users
// ABOUTME: n creates a user with a role picker, e edits and d deletes the selected one

package screens

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/tui/forms"
)

var errDeleteSelf = errors.New("no puedes eliminar tu propio usuario")

type usersLoadedMsg struct {
	origin int64
	users  []client.User
	err    error
}

type rolesLoadedMsg struct {
	origin int64
	roles  []client.Role
	err    error
}

// Users lists and edits user accounts
type Users struct {
	base
	users []client.User
}

// NewUsers creates the users screen
func NewUsers(deps Deps) *Users {
	return &Users{base: newBase(deps, []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Usuario", Width: 16},
		{Title: "Nombre", Width: 26},
		{Title: "Email", Width: 28},
		{Title: "Rol", Width: 16},
		{Title: "Estado", Width: 9},
	})}
}

func (s *Users) allowed() bool {
	return s.deps.Viewer.Caps.CanManageUsers
}

// Refresh implements Screen; nothing is fetched without permission
func (s *Users) Refresh() tea.Cmd {
	if !s.allowed() {
		return nil
	}
	api, ctx, origin := s.deps.API, s.deps.ctx(), s.origin
	return tea.Batch(s.startLoading(), func() tea.Msg {
		users, err := api.Users(ctx)
		return usersLoadedMsg{origin: origin, users: users, err: err}
	})
}

// Update implements Screen
func (s *Users) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		if msg.origin != s.origin {
			return nil
		}
		s.finishLoading(msg.err)
		if msg.err == nil {
			s.setUsers(msg.users)
		}
		return nil
	case rolesLoadedMsg:
		if msg.origin != s.origin {
			return nil
		}
		s.loading = false
		if msg.err != nil {
			s.err = fmt.Errorf("no se pudieron cargar los roles: %w", msg.err)
			return nil
		}
		return s.create(msg.roles)
	}
	if !s.allowed() {
		return nil
	}
	if cmd, done := s.handleCommon(msg); done {
		return cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "n":
		return s.loadRoles()
	case "e":
		if i, ok := s.selected(len(s.users)); ok {
			return s.edit(s.users[i])
		}
		return nil
	case "d":
		if i, ok := s.selected(len(s.users)); ok {
			return s.delete(s.users[i])
		}
		return nil
	}
	return s.updateTable(msg)
}

func (s *Users) setUsers(users []client.User) {
	s.users = users
	rows := make([]table.Row, 0, len(users))
	for _, u := range users {
		role := "-"
		if r, ok := u.Role(); ok {
			role = r.Nombre
		}
		estado := "Activo"
		if !u.Activo {
			estado = "Inactivo"
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(u.ID, 10),
			u.UserName,
			u.FullName(),
			u.Email,
			role,
			estado,
		})
	}
	s.table.SetRows(rows)
}

func (s *Users) loadRoles() tea.Cmd {
	api, ctx, origin := s.deps.API, s.deps.ctx(), s.origin
	return tea.Batch(s.startLoading(), func() tea.Msg {
		roles, err := api.Roles(ctx)
		return rolesLoadedMsg{origin: origin, roles: roles, err: err}
	})
}

func (s *Users) create(roles []client.Role) tea.Cmd {
	if len(roles) == 0 {
		s.err = errors.New("no hay roles disponibles")
		return nil
	}
	v := &forms.UserValues{}
	return s.openEditor(forms.User(v, roles), func() tea.Cmd {
		input, err := v.Input()
		if err != nil {
			return mutate("crear usuario", func() error { return err })
		}
		api, ctx := s.deps.API, s.deps.ctx()
		return mutate(fmt.Sprintf("Usuario %q creado", input.UserName), func() error {
			_, err := api.CreateUser(ctx, input)
			return err
		})
	})
}

func (s *Users) edit(u client.User) tea.Cmd {
	v := forms.UserEditValuesFrom(u)
	return s.openEditor(forms.EditUser(v), func() tea.Cmd {
		update, err := v.Update()
		if err != nil {
			return mutate("editar usuario", func() error { return err })
		}
		api, ctx := s.deps.API, s.deps.ctx()
		return mutate(fmt.Sprintf("Usuario %q actualizado", u.UserName), func() error {
			_, err := api.UpdateUser(ctx, u.ID, update)
			return err
		})
	})
}

func (s *Users) delete(u client.User) tea.Cmd {
	if u.ID == s.deps.Viewer.User.ID {
		s.err = errDeleteSelf
		return nil
	}
	var ok bool
	return s.openEditor(forms.Confirm("Eliminar usuario", fmt.Sprintf("¿Eliminar a %q?", u.UserName), &ok), func() tea.Cmd {
		if !ok {
			return nil
		}
		api, ctx := s.deps.API, s.deps.ctx()
		return mutate(fmt.Sprintf("Usuario %q eliminado", u.UserName), func() error {
			return api.DeleteUser(ctx, u.ID)
		})
	})
}

// View implements Screen
func (s *Users) View() string {
	if !s.allowed() {
		return Restricted("Usuarios")
	}
	body := s.table.View()
	if !s.loading && s.err == nil && len(s.users) == 0 {
		body = "No hay usuarios"
	}
	return s.render("Usuarios", body)
}

// Shortcuts implements Screen
func (s *Users) Shortcuts() []string {
	if !s.allowed() {
		return nil
	}
	if s.Editing() {
		return []string{"Tab Siguiente", "Enter Confirmar", "Esc Cancelar"}
	}
	return []string{"n Nuevo", "e Editar", "d Eliminar"}
}
