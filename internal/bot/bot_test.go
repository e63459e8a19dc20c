package bot

import (
	"context"
	"time"

	"bazaarbot/internal/dialog"
	"bazaarbot/internal/models"
	"bazaarbot/internal/service"
	"bazaarbot/internal/session"
	"bazaarbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// fakeCtx implements the slice of tele.Context the handlers touch. The
// embedded nil interface panics on anything unexpected, which is exactly
// what a test should do.
type fakeCtx struct {
	tele.Context

	sender *tele.User
	chat   *tele.Chat
	text   string
	msg    *tele.Message
	cb     *tele.Callback
	kv     map[string]any

	sent     []string
	edited   []string
	markups  []*tele.ReplyMarkup
	responds []*tele.CallbackResponse
	deleted  bool
}

func newFakeCtx(userID int64, text string) *fakeCtx {
	return &fakeCtx{
		sender: &tele.User{ID: userID, FirstName: "Test"},
		chat:   &tele.Chat{ID: userID},
		text:   text,
		msg:    &tele.Message{ID: 1, Chat: &tele.Chat{ID: userID}, Text: text},
		kv:     make(map[string]any),
	}
}

func newPhotoCtx(userID int64, fileID string) *fakeCtx {
	c := newFakeCtx(userID, "")
	c.msg.Photo = &tele.Photo{File: tele.File{FileID: fileID, UniqueID: fileID + "-u"}}
	return c
}

func newCallbackCtx(userID int64, unique, payload string) *fakeCtx {
	c := newFakeCtx(userID, "")
	data := unique
	if payload != "" {
		data += "|" + payload
	}
	c.cb = &tele.Callback{Data: data, Message: c.msg}
	return c
}

func (f *fakeCtx) Sender() *tele.User        { return f.sender }
func (f *fakeCtx) Chat() *tele.Chat          { return f.chat }
func (f *fakeCtx) Update() tele.Update       { return tele.Update{} }
func (f *fakeCtx) Text() string              { return f.text }
func (f *fakeCtx) Message() *tele.Message    { return f.msg }
func (f *fakeCtx) Callback() *tele.Callback  { return f.cb }
func (f *fakeCtx) Get(key string) any        { return f.kv[key] }
func (f *fakeCtx) Set(key string, val any)   { f.kv[key] = val }
func (f *fakeCtx) Delete() error             { f.deleted = true; return nil }
func (f *fakeCtx) Recipient() tele.Recipient { return f.sender }
func (f *fakeCtx) Bot() tele.API             { return nil }

func (f *fakeCtx) Send(what any, opts ...any) error {
	if s, ok := what.(string); ok {
		f.sent = append(f.sent, s)
	}
	f.captureMarkup(opts)
	return nil
}

func (f *fakeCtx) Edit(what any, opts ...any) error {
	if s, ok := what.(string); ok {
		f.edited = append(f.edited, s)
	}
	f.captureMarkup(opts)
	return nil
}

func (f *fakeCtx) captureMarkup(opts []any) {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v.ReplyMarkup != nil {
				f.markups = append(f.markups, v.ReplyMarkup)
			}
		case *tele.ReplyMarkup:
			f.markups = append(f.markups, v)
		}
	}
}

// lastMarkup returns the most recent captured inline keyboard.
func (f *fakeCtx) lastMarkup() *tele.ReplyMarkup {
	if n := len(f.markups); n > 0 {
		return f.markups[n-1]
	}
	return nil
}

func (f *fakeCtx) Respond(resp ...*tele.CallbackResponse) error {
	f.responds = append(f.responds, resp...)
	return nil
}

// lastText returns the most recent rendered output, edited or sent.
func (f *fakeCtx) lastText() string {
	if n := len(f.sent); n > 0 {
		return f.sent[n-1]
	}
	if n := len(f.edited); n > 0 {
		return f.edited[n-1]
	}
	return ""
}

// In-memory stores mirroring the repository contracts.

type memLogs struct {
	actions  []string
	messages []string
}

func (m *memLogs) AddLog(_ context.Context, _ int64, action, _ string) error {
	m.actions = append(m.actions, action)
	return nil
}

func (m *memLogs) AddMessage(_ context.Context, _ int64, text, _ string) error {
	m.messages = append(m.messages, text)
	return nil
}

type memUsers struct {
	users map[int64]*models.User
}

func (m *memUsers) Upsert(_ context.Context, id int64, username, firstName, lastName string) error {
	u, ok := m.users[id]
	if !ok {
		u = &models.User{ID: id, IsActive: true}
		m.users[id] = u
	}
	u.Username.Valid, u.Username.String = true, username
	u.FirstName.Valid, u.FirstName.String = true, firstName
	u.LastName.Valid, u.LastName.String = true, lastName
	return nil
}

func (m *memUsers) Register(_ context.Context, id int64, firstName, lastName string, phone, city *string) error {
	u, ok := m.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.IsRegistered = true
	u.FirstName.Valid, u.FirstName.String = true, firstName
	u.LastName.Valid, u.LastName.String = true, lastName
	if phone != nil {
		u.Phone.Valid, u.Phone.String = true, *phone
	}
	if city != nil {
		u.City.Valid, u.City.String = true, *city
	}
	return nil
}

func (m *memUsers) IsRegistered(_ context.Context, id int64) (bool, error) {
	u, ok := m.users[id]
	return ok && u.IsRegistered, nil
}

func (m *memUsers) UpdateProfileField(_ context.Context, id int64, field, value string) error {
	u, ok := m.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	switch field {
	case "phone":
		u.Phone.Valid, u.Phone.String = true, value
	case "first_name":
		u.FirstName.Valid, u.FirstName.String = true, value
	case "last_name":
		u.LastName.Valid, u.LastName.String = true, value
	case "city":
		u.City.Valid, u.City.String = true, value
	}
	return nil
}

func (m *memUsers) TouchActivity(_ context.Context, id int64) error {
	if u, ok := m.users[id]; ok {
		u.MessageCount++
	}
	return nil
}

func (m *memUsers) GetByTelegramID(_ context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) ListActive(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUsers) ActiveIDs(_ context.Context) ([]int64, error) {
	var ids []int64
	for id, u := range m.users {
		if u.IsActive {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memUsers) Deactivate(_ context.Context, id int64) error {
	if u, ok := m.users[id]; ok {
		u.IsActive = false
	}
	return nil
}

func (m *memUsers) Count(_ context.Context) (int, error) { return len(m.users), nil }

func (m *memUsers) DailyStats(_ context.Context) (models.DailyStats, error) {
	return models.DailyStats{}, nil
}

type memOrders struct {
	nextID int64
	orders map[int64]*models.Order
}

func (m *memOrders) Create(_ context.Context, userID, productID, price int64, screenshotFileID string) (int64, error) {
	m.nextID++
	o := &models.Order{
		ID: m.nextID, UserID: userID, ProductID: productID, Price: price,
		Status: models.OrderPending,
	}
	o.ScreenshotFileID.Valid, o.ScreenshotFileID.String = true, screenshotFileID
	m.orders[m.nextID] = o
	return m.nextID, nil
}

func (m *memOrders) Get(_ context.Context, id int64) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) ListByUser(_ context.Context, userID int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrders) PaginatePending(_ context.Context, page, perPage int) (storage.Page[models.Order], error) {
	var pending []models.Order
	for _, o := range m.orders {
		if o.Status == models.OrderPending {
			pending = append(pending, *o)
		}
	}
	return storage.NewPage(pending, page, perPage, len(pending)), nil
}

func (m *memOrders) Decide(_ context.Context, id int64, status models.OrderStatus, adminID int64, reason *string) error {
	o, ok := m.orders[id]
	if !ok {
		return storage.ErrNotFound
	}
	if o.Status != models.OrderPending {
		if o.Status == status {
			return nil
		}
		return storage.ErrOrderDecided
	}
	o.Status = status
	o.AdminID.Valid, o.AdminID.Int64 = true, adminID
	if reason != nil {
		o.RejectionReason.Valid, o.RejectionReason.String = true, *reason
	}
	return nil
}

type memProducts struct {
	nextID   int64
	products map[int64]*models.Product
}

func (m *memProducts) Create(_ context.Context, name string, price int64, imageURL, description *string) (int64, error) {
	m.nextID++
	p := &models.Product{ID: m.nextID, Name: name, Price: price, IsActive: true}
	if description != nil {
		p.Description.Valid, p.Description.String = true, *description
	}
	m.products[m.nextID] = p
	return m.nextID, nil
}

func (m *memProducts) Get(_ context.Context, id int64) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok || !p.IsActive {
		return nil, storage.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) UpdateField(_ context.Context, id int64, field string, value any) error {
	p, ok := m.products[id]
	if !ok {
		return storage.ErrNotFound
	}
	switch field {
	case "name":
		p.Name = value.(string)
	case "price":
		p.Price = value.(int64)
	case "description":
		p.Description.Valid, p.Description.String = true, value.(string)
	}
	return nil
}

func (m *memProducts) SoftDelete(_ context.Context, id int64) error {
	p, ok := m.products[id]
	if !ok {
		return storage.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func (m *memProducts) CountActive(_ context.Context) (int, error) {
	n := 0
	for _, p := range m.products {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

func (m *memProducts) Paginate(_ context.Context, page, perPage int) (storage.Page[models.Product], error) {
	var active []models.Product
	for _, p := range m.products {
		if p.IsActive {
			active = append(active, *p)
		}
	}
	total := len(active)
	off := storage.PageOffset(page, perPage)
	if off >= total {
		return storage.NewPage([]models.Product{}, page, perPage, total), nil
	}
	end := off + perPage
	if end > total {
		end = total
	}
	return storage.NewPage(active[off:end], page, perPage, total), nil
}

type memImages struct {
	nextID int64
	images map[int64][]models.ProductImage
}

func (m *memImages) Add(_ context.Context, productID int64, ref models.PhotoRef) error {
	m.nextID++
	m.images[productID] = append(m.images[productID], models.ProductImage{
		ID: m.nextID, ProductID: productID, FileID: ref.FileID, FileUniqueID: ref.FileUniqueID,
	})
	return nil
}

func (m *memImages) List(_ context.Context, productID int64) ([]models.ProductImage, error) {
	return m.images[productID], nil
}

func (m *memImages) Paginate(_ context.Context, productID int64, page, perPage int) (storage.Page[models.ProductImage], error) {
	all := m.images[productID]
	total := len(all)
	off := storage.PageOffset(page, perPage)
	if off >= total {
		return storage.NewPage([]models.ProductImage{}, page, perPage, total), nil
	}
	end := off + perPage
	if end > total {
		end = total
	}
	return storage.NewPage(all[off:end], page, perPage, total), nil
}

func (m *memImages) Delete(_ context.Context, imageID int64) error {
	for pid, list := range m.images {
		for i, img := range list {
			if img.ID == imageID {
				m.images[pid] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return storage.ErrNotFound
}

type testFixture struct {
	app      *App
	users    *memUsers
	orders   *memOrders
	products *memProducts
	images   *memImages
	logs     *memLogs
}

func newTestApp() *testFixture {
	f := &testFixture{
		users:    &memUsers{users: make(map[int64]*models.User)},
		orders:   &memOrders{orders: make(map[int64]*models.Order)},
		products: &memProducts{products: make(map[int64]*models.Product)},
		images:   &memImages{images: make(map[int64][]models.ProductImage)},
		logs:     &memLogs{},
	}

	audit := service.NewAudit(f.logs)
	users := service.NewUsers(f.users, audit)
	cfg := &Config{Admin: AdminConfig{Password: "secret-pass", SessionSeconds: 3600}}

	f.app = &App{
		cfg:      cfg,
		users:    users,
		catalog:  service.NewCatalog(f.products, f.images, audit),
		orders:   service.NewOrders(f.orders, audit, nil),
		stats:    service.NewStats(f.users, users),
		audit:    audit,
		sessions: session.NewRegistry(time.Hour),
		dialogs:  dialog.NewStore(),
		panels:   NewPanelTracker(),
		notifier: &telegramNotifier{},
	}
	return f
}

func (f *testFixture) seedUser(id int64, registered bool) {
	u := &models.User{ID: id, IsActive: true, IsRegistered: registered}
	f.users.users[id] = u
}
