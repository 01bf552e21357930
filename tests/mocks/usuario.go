package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
	usuarioDomain "github.com/ugelhub/convocatorias/internal/usuario/domain"
)

// InMemoryUsuarioRepo simula UsuarioRepository. Postulaciones lleva el
// conteo de dependientes por usuario para simular el guard de borrado.
type InMemoryUsuarioRepo struct {
	Usuarios      map[uuid.UUID]*usuarioDomain.Usuario
	Postulaciones map[uuid.UUID]int64
	mu            sync.Mutex
}

var _ usuarioDomain.UsuarioRepository = (*InMemoryUsuarioRepo)(nil)

func NewInMemoryUsuarioRepo() *InMemoryUsuarioRepo {
	return &InMemoryUsuarioRepo{
		Usuarios:      make(map[uuid.UUID]*usuarioDomain.Usuario),
		Postulaciones: make(map[uuid.UUID]int64),
	}
}

func (r *InMemoryUsuarioRepo) Create(ctx context.Context, u *usuarioDomain.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Usuarios {
		if existing.DNI == u.DNI {
			return usuarioDomain.ErrDNIEnUso
		}
		if existing.Email == u.Email {
			return usuarioDomain.ErrEmailEnUso
		}
	}
	r.Usuarios[u.ID] = u
	return nil
}

func (r *InMemoryUsuarioRepo) Update(ctx context.Context, u *usuarioDomain.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Usuarios[u.ID]; !ok {
		return usuarioDomain.ErrUsuarioNotFound
	}
	r.Usuarios[u.ID] = u
	return nil
}

func (r *InMemoryUsuarioRepo) GetByID(ctx context.Context, id uuid.UUID) (*usuarioDomain.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Usuarios[id]
	if !ok {
		return nil, usuarioDomain.ErrUsuarioNotFound
	}
	return u, nil
}

func (r *InMemoryUsuarioRepo) GetByDNI(ctx context.Context, dni string) (*usuarioDomain.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Usuarios {
		if u.DNI == dni {
			return u, nil
		}
	}
	return nil, usuarioDomain.ErrUsuarioNotFound
}

func (r *InMemoryUsuarioRepo) List(ctx context.Context, criteria sharedDomain.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*usuarioDomain.UsuarioListado], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []*usuarioDomain.UsuarioListado
	for _, u := range r.Usuarios {
		if matchUsuario(u, criteria) {
			list = append(list, &usuarioDomain.UsuarioListado{Usuario: *u})
		}
	}

	// El servicio siempre pide administradores primero; el mock replica
	// ese orden y desempata por nombres.
	sort.SliceStable(list, func(i, j int) bool {
		ri, rj := 1, 1
		if list[i].Tipo == usuarioDomain.TipoAdmin {
			ri = 0
		}
		if list[j].Tipo == usuarioDomain.TipoAdmin {
			rj = 0
		}
		if ri != rj {
			return ri < rj
		}
		if list[i].Nombres != list[j].Nombres {
			return list[i].Nombres < list[j].Nombres
		}
		return list[i].Apellidos < list[j].Apellidos
	})

	total := int64(len(list))
	start := p.Offset
	if start > len(list) {
		start = len(list)
	}
	end := start + p.Limit
	if end > len(list) {
		end = len(list)
	}

	page := p.Offset/p.Limit + 1
	return sharedQuery.NewPage(list[start:end], total, page, p.Limit), nil
}

func (r *InMemoryUsuarioRepo) Delete(ctx context.Context, id uuid.UUID) (sharedDomain.DeleteOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Usuarios[id]; !ok {
		return sharedDomain.DeleteOutcome{}, usuarioDomain.ErrUsuarioNotFound
	}
	if n := r.Postulaciones[id]; n > 0 {
		return sharedDomain.DeleteBlocked("postulaciones", n), nil
	}
	delete(r.Usuarios, id)
	return sharedDomain.DeleteDone(), nil
}

// matchUsuario evalúa el criterio contra un usuario: las condiciones de
// igualdad se exigen todas; las de LIKE (búsqueda libre) basta con que
// una coincida, igual que el grupo OR del SQL.
func matchUsuario(u *usuarioDomain.Usuario, criteria sharedDomain.Criteria) bool {
	if criteria == nil {
		return true
	}
	conds := criteria.ToConditions()
	if len(conds) == 0 {
		return true
	}

	anyLike := false
	likeMatched := false
	for _, c := range conds {
		val := fmt.Sprintf("%v", c.Value)
		switch c.Op {
		case sharedDomain.OpLike, sharedDomain.OpILike:
			anyLike = true
			needle := strings.ToLower(likeNeedle(val))
			var hay string
			switch c.Field {
			case "us.nombres":
				hay = u.Nombres
			case "us.apellidos":
				hay = u.Apellidos
			case "us.dni":
				hay = u.DNI
			case "us.email":
				hay = u.Email
			}
			if strings.Contains(strings.ToLower(hay), needle) {
				likeMatched = true
			}
		default:
			switch c.Field {
			case "us.user_type":
				if string(u.Tipo) != val {
					return false
				}
			case "us.estado":
				if string(u.Estado) != val {
					return false
				}
			}
		}
	}
	if anyLike && !likeMatched {
		return false
	}
	return true
}

// likeNeedle deshace el patrón %...% y el escapado de LIKE para comparar
// como subcadena literal.
func likeNeedle(pattern string) string {
	s := strings.Trim(pattern, "%")
	r := strings.NewReplacer(`\%`, `%`, `\_`, `_`, `\\`, `\`)
	return r.Replace(s)
}

// ------------------- Perfiles -------------------

type InMemoryPerfilRepo struct {
	Perfiles map[uuid.UUID]*usuarioDomain.PerfilDocente // por usuario
	mu       sync.Mutex
}

var _ usuarioDomain.PerfilRepository = (*InMemoryPerfilRepo)(nil)

func NewInMemoryPerfilRepo() *InMemoryPerfilRepo {
	return &InMemoryPerfilRepo{Perfiles: make(map[uuid.UUID]*usuarioDomain.PerfilDocente)}
}

func (r *InMemoryPerfilRepo) GetByUsuario(ctx context.Context, usuarioID uuid.UUID) (*usuarioDomain.PerfilDocente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Perfiles[usuarioID]
	if !ok {
		return nil, usuarioDomain.ErrPerfilNotFound
	}
	return p, nil
}

func (r *InMemoryPerfilRepo) Save(ctx context.Context, p *usuarioDomain.PerfilDocente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Perfiles[p.UsuarioID] = p
	return nil
}

// ------------------- Notificaciones -------------------

type InMemoryNotificacionRepo struct {
	Notificaciones []*usuarioDomain.Notificacion
	mu             sync.Mutex
}

var _ usuarioDomain.NotificacionRepository = (*InMemoryNotificacionRepo)(nil)

func NewInMemoryNotificacionRepo() *InMemoryNotificacionRepo {
	return &InMemoryNotificacionRepo{}
}

func (r *InMemoryNotificacionRepo) Create(ctx context.Context, n *usuarioDomain.Notificacion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notificaciones = append(r.Notificaciones, n)
	return nil
}

func (r *InMemoryNotificacionRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID, soloNoLeidas bool, p sharedQuery.OffsetPagination) (*sharedQuery.Page[*usuarioDomain.Notificacion], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []*usuarioDomain.Notificacion
	for _, n := range r.Notificaciones {
		if n.UsuarioID != usuarioID {
			continue
		}
		if soloNoLeidas && n.Leida {
			continue
		}
		list = append(list, n)
	}

	total := int64(len(list))
	start := p.Offset
	if start > len(list) {
		start = len(list)
	}
	end := start + p.Limit
	if end > len(list) {
		end = len(list)
	}

	page := p.Offset/p.Limit + 1
	return sharedQuery.NewPage(list[start:end], total, page, p.Limit), nil
}

func (r *InMemoryNotificacionRepo) CountNoLeidas(ctx context.Context, usuarioID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, notif := range r.Notificaciones {
		if notif.UsuarioID == usuarioID && !notif.Leida {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryNotificacionRepo) MarcarLeida(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.Notificaciones {
		if n.ID == id {
			n.MarcarLeida(time.Now().UTC())
			return nil
		}
	}
	return usuarioDomain.ErrNotificacionNotFound
}

func (r *InMemoryNotificacionRepo) MarcarTodasLeidas(ctx context.Context, usuarioID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	for _, n := range r.Notificaciones {
		if n.UsuarioID == usuarioID && !n.Leida {
			n.MarcarLeida(now)
		}
	}
	return nil
}
