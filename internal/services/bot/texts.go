package bot

const (
	textAskPhone  = "سلام! برای استفاده از ربات ابتدا باید ثبت‌نام کنید.\nلطفاً با دکمه زیر شماره تماس خود را به اشتراک بگذارید."
	textAskName   = "ممنون! حالا لطفاً نام خود را بنویسید."
	textAskCity   = "عالی! از کدام شهر هستید؟"
	textWelcome   = "ثبت‌نام شما کامل شد! 🎉\nاز منوی زیر یکی از امکانات ربات را انتخاب کنید:"
	textDashboard = "از منوی زیر یکی از امکانات ربات را انتخاب کنید:"
	textHelp = "راهنمای ربات:\n\n" +
		"🔢 عدد شانس: عدد کوآی شما را بر اساس تاریخ تولد محاسبه می‌کند.\n" +
		"🐉 نماد چینی: نماد و عنصر سال تولد شما در تقویم چینی را مشخص می‌کند.\n" +
		"📝 آزمون: با چند پرسش کوتاه، شناخت شما از فنگ‌شویی را می‌سنجد.\n" +
		"✈️ سفر: برای شرکت در سفرهای گروهی ثبت‌نام کنید.\n\n" +
		"برای ارسال پیام به پشتیبانی از دستور /contact استفاده کنید."

	textKuaIntro = "🔢 محاسبه عدد شانس\n\n" +
		"عدد کوآ بر اساس سال تولد و جنسیت شما محاسبه می‌شود و در فنگ‌شویی " +
		"جهت‌های مناسب زندگی شما را نشان می‌دهد."
	textZodiacIntro = "🐉 نماد سال تولد\n\n" +
		"در تقویم چینی هر سال با یک حیوان و یک عنصر شناخته می‌شود. " +
		"تاریخ تولد خود را وارد کنید تا نماد سال تولدتان را بگویم."

	textChooseDecade = "دهه تولد خود را انتخاب کنید:"
	textChooseYear   = "سال تولد خود را انتخاب کنید:"
	textChooseMonth  = "ماه تولد خود را انتخاب کنید:"
	textChooseDay    = "روز تولد خود را انتخاب کنید:"
	textChooseGender = "جنسیت خود را انتخاب کنید:"

	textInvalidDate     = "تاریخی که وارد کردید معتبر نیست. ❌\nلطفاً دوباره از ابتدا انتخاب کنید."
	textUnsupportedYear = "متأسفانه محاسبه برای این سال تولد پشتیبانی نمی‌شود. 🙏"

	textKuaLimit    = "شما به سقف مجاز محاسبه عدد شانس رسیده‌اید. 🔒"
	textZodiacLimit = "شما به سقف مجاز محاسبه نماد چینی رسیده‌اید. 🔒"
	textQuizLimit   = "شما به سقف مجاز شرکت در آزمون رسیده‌اید. 🔒"

	textJoinChannels = "برای استفاده از این بخش ابتدا باید در کانال‌های زیر عضو شوید. " +
		"پس از عضویت، دکمه «عضو شدم ✅» را بزنید."
	textJoinConfirm = "عضو شدم ✅"

	textQuizIntro = "📝 آزمون فنگ‌شویی\n\n" +
		"به چند پرسش کوتاه پاسخ دهید تا میزان آشنایی شما با فنگ‌شویی مشخص شود."

	textJourneyIntro   = "✈️ ثبت‌نام سفر\n\nبرای ثبت‌نام، لطفاً نام و نام خانوادگی خود را بنویسید."
	textJourneyCity    = "از کدام شهر به سفر ملحق می‌شوید؟"
	textJourneyDone    = "ثبت‌نام شما برای سفر انجام شد! ✅\nبه‌زودی با شما تماس می‌گیریم."
	textJourneyAlready = "شما قبلاً برای سفر ثبت‌نام کرده‌اید. ✅"

	textContactPrompt = "پیام خود را بنویسید تا برای پشتیبانی ارسال شود:"
	textContactSent   = "پیام شما برای پشتیبانی ارسال شد. 🙏"

	textNotAuthorized  = "این دستور فقط برای مدیران ربات در دسترس است."
	textBroadcastUsage = "برای ارسال همگانی، روی پیام مورد نظر ریپلای کنید و دستور /broadcast را بفرستید.\n" +
		"برای فیلتر شهر، نام شهرها را با کاما جدا کنید: /broadcast tehran,mashhad"
	textBroadcastQueued = "پیام در صف ارسال قرار گرفت. 📤"
	textResetDone       = "شمارنده‌های استفاده صفر شدند. ✅"

	textGenericError = "مشکلی پیش آمد، لطفاً کمی بعد دوباره تلاش کنید. 🙏"

	textBotDescription = "ربات محاسبه عدد شانس و نماد سال تولد بر اساس فنگ‌شویی"
)

var monthNames = [12]string{
	"فروردین", "اردیبهشت", "خرداد",
	"تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر",
	"دی", "بهمن", "اسفند",
}
