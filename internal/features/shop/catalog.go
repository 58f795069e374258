// Package shop — catalog.go содержит первоначальный каталог товаров.
// Посев выполняется один раз при пустой таблице items.
package shop

// catalogItem — строка посева каталога.
type catalogItem struct {
	SKU      string
	Name     string
	Category string
	Effect   string // JSON-эффект как есть
	Price    float64
	Rarity   string
}

var initialCatalog = []catalogItem{
	// Базовые предметы
	{"SKU_HARDHAT_1", "Простая каска", CategoryUpgrade, `{"safety":1}`, 250, "common"},
	{"SKU_HARDHAT_2", "Улучшенная каска", CategoryUpgrade, `{"safety":2}`, 1200, "uncommon"},
	{"SKU_RAKE_1", "Грабли", CategoryTool, `{"farm":1}`, 180, "common"},
	{"SKU_RAKE_2", "Проф. грабли", CategoryTool, `{"farm":2}`, 900, "uncommon"},
	{"SKU_LAMP_1", "Шахтёрский фонарь", CategoryTool, `{"mine":1}`, 600, "common"},
	{"SKU_MEDKIT_1", "Аптечка", CategoryConsumable, `{"heal":1}`, 800, "common"},
	{"SKU_CHARM_1", "Талисман удачи", CategoryConsumable, `{"luck":1}`, 3000, "rare"},

	// Улучшенные предметы
	{"SKU_VEST", "Бронежилет", CategoryUpgrade, `{"safety":3}`, 5000, "rare"},
	{"SKU_AXE", "Топор", CategoryTool, `{"wood":1}`, 400, "common"},
	{"SKU_HAMMER", "Молот", CategoryTool, `{"build":1}`, 700, "common"},
	{"SKU_COFFEE", "Кофе (ускоритель)", CategoryConsumable, `{"speed":1}`, 350, "common"},
	{"SKU_SUPER_HARDHAT", "Крутая каска", CategoryUpgrade, `{"safety":4}`, 12000, "epic"},
	{"SKU_PRO_TOOLS", "Инструменты PRO", CategoryUpgrade, `{"eff":2}`, 2500, "rare"},
	{"SKU_FISH_PRO", "Рыболовные снасти PRO", CategoryTool, `{"fish":2}`, 1800, "rare"},

	// Бизнес-предметы
	{"SKU_MARKETING", "Маркет. пакет", CategoryService, `{"biz_income":1}`, 8000, "rare"},
	{"SKU_WORKFORCE", "Набор рабочих", CategoryService, `{"employees":1}`, 15000, "epic"},
	{"SKU_SAFE", "Сейф", CategoryService, `{"storage":1}`, 2200, "uncommon"},

	// Магические предметы
	{"SKU_LUCK_RING", "Кольцо удачи", CategoryConsumable, `{"luck":2}`, 2000, "rare"},
	{"SKU_HAT_VIP", "Шляпа VIP", CategoryCosmetic, `{}`, 1000, "uncommon"},
	{"SKU_CLOAK_VIP", "Плащ VIP", CategoryCosmetic, `{}`, 3000, "rare"},
	{"SKU_ENGINEER", "Инструменты инженера", CategoryUpgrade, `{"eff":3}`, 7000, "epic"},
	{"SKU_EMPLOYEE", "Контракт: сотрудник", CategoryService, `{"employee":1}`, 5000, "rare"},
	{"SKU_LICENSE", "Лицензия казино", CategoryService, `{"license":1}`, 6000, "epic"},
	{"SKU_INVEST", "Инвест.пакет", CategoryService, `{"invest":1}`, 10000, "epic"},
	{"SKU_LUCK_PLUS", "Талисман удачи +2", CategoryConsumable, `{"luck":3}`, 5000, "epic"},

	// Уникальные семена
	{"SKU_SEED_GOLD", "Золотое семя", CategorySeed, `{"farm_income":5.0}`, 5000, "legendary"},
	{"SKU_SEED_SILVER", "Серебрянное семя", CategorySeed, `{"farm_income":3.5}`, 3000, "epic"},
	{"SKU_SEED_EMERALD", "Изумрудное семя", CategorySeed, `{"farm_income":8.0}`, 8000, "legendary"},
	{"SKU_SEED_DIAMOND", "Бриллиантовое семя", CategorySeed, `{"farm_income":12.0}`, 15000, "mythic"},
	{"SKU_SEED_SKY", "Небесное семя", CategorySeed, `{"farm_income":15.0}`, 20000, "mythic"},
	{"SKU_SEED_GALAXY", "Галактическое семя", CategorySeed, `{"farm_income":25.0}`, 50000, "divine"},

	// Обычные семена
	{"SKU_SEED_WHEAT", "Пшеница", CategorySeed, `{"farm_income":1.0}`, 50, "common"},
	{"SKU_SEED_CARROT", "Морковь", CategorySeed, `{"farm_income":1.2}`, 80, "common"},
	{"SKU_SEED_TOMATO", "Помидор", CategorySeed, `{"farm_income":1.5}`, 120, "common"},

	// Улучшения фермы
	{"SKU_FARM_EXPAND", "Расширение фермы", CategoryUpgrade, `{"farm_slots":1}`, 10000, "rare"},
	{"SKU_AUTO_WATER", "Автополив", CategoryUpgrade, `{"farm_speed":0.8}`, 8000, "rare"},
	{"SKU_FERTILIZER", "Удобрение", CategoryConsumable, `{"farm_yield":1.5}`, 3000, "uncommon"},
	{"SKU_GREENHOUSE", "Теплица", CategoryUpgrade, `{"farm_income":2.0}`, 25000, "epic"},
	{"SKU_IRRIGATION", "Система орошения", CategoryUpgrade, `{"farm_growth":0.7}`, 15000, "rare"},
}
