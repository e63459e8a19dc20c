package bot

// Callback unique keys. Telebot encodes buttons as "\f<unique>|<payload>",
// so page numbers and entity ids travel in the payload, never in the key.
const (
	cbNoop = "noop"

	// Registration and profile.
	cbStartRegistration  = "start_registration"
	cbCancelRegistration = "cancel_registration"
	cbSkipPhone          = "skip_phone"
	cbSkipCity           = "skip_city"
	cbEditProfile        = "edit_profile"
	cbEditPhone          = "edit_phone"
	cbEditFirstName      = "edit_first_name"
	cbEditLastName       = "edit_last_name"
	cbEditCity           = "edit_city"

	// User main menu.
	cbMenuMain     = "menu_main"
	cbMenuProfile  = "menu_profile"
	cbMenuProducts = "menu_products"
	cbMenuWallet   = "menu_wallet"
	cbMenuOrders   = "menu_orders"

	// User catalog.
	cbProductsPage  = "products_page"
	cbViewProduct   = "view_product"
	cbViewAllImages = "view_all_images"
	cbImagesPage    = "images_page"
	cbBuyProduct    = "buy_product"

	// Admin panel.
	cbAdminMenu         = "admin_menu"
	cbAdminStats        = "admin_stats"
	cbAdminUsers        = "admin_users"
	cbAdminOrders       = "admin_orders"
	cbAdminOrdersPage   = "admin_orders_page"
	cbAdminViewOrder    = "admin_view_order"
	cbAdminViewOrderSS  = "admin_view_order_ss"
	cbAdminApproveOrder = "admin_approve_order"
	cbAdminRejectOrder  = "admin_reject_order"
	cbAdminBroadcast    = "admin_broadcast"
	cbAdminSession      = "admin_session"
	cbAdminRefresh      = "admin_refresh"
	cbAdminProducts     = "admin_products"
	cbAdminLogout       = "admin_logout"

	// Admin catalog management.
	cbAddProduct        = "add_product"
	cbListProducts      = "list_products"
	cbAdminProductsPage = "admin_products_page"
	cbManageProduct     = "manage_product"
	cbEditProductName   = "edit_product_name"
	cbEditProductPrice  = "edit_product_price"
	cbEditProductDesc   = "edit_product_desc"
	cbSkipImage         = "skip_image"
	cbSkipDescription   = "skip_description"
	cbAddProductImage   = "add_product_image"
	cbManageImages      = "manage_images"
	cbDeleteImage       = "delete_image"
	cbDeleteProduct     = "delete_product"
)
