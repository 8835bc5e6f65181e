package bot

// =============================================================================
// General messages
// =============================================================================

const (
	MsgAnalyzing = `🔄 *Analyse en cours...*

⏳ Identification de la carte
⏳ Évaluation de l'état
⏳ Recherche des prix de marché

_Propulsé par Vaulty Protocol 🇨🇭_`

	MsgAnalysisFailed = `❌ *Erreur lors de l'analyse*

Détails: %s

Réessayez ou visitez:
🌐 *vaultyprotocol.tech*`

	MsgVersionInfo = "🎴 Vaulty Card Analyzer v%s\n🔐 Vaulty Protocol 🇨🇭"
)

// =============================================================================
// Analysis error details, one per failure category
// =============================================================================

const (
	ErrDetailAuth      = "le service d'analyse a refusé la clé API"
	ErrDetailRateLimit = "trop de demandes en ce moment, patientez une minute"
	ErrDetailTimeout   = "l'analyse a pris trop de temps"
	ErrDetailEmpty     = "le modèle n'a renvoyé aucune analyse exploitable"
	ErrDetailDownload  = "impossible de télécharger la photo"
	ErrDetailGeneric   = "erreur inattendue, réessayez dans un instant"
)

// =============================================================================
// Command replies
// =============================================================================

const (
	MsgWelcome = `🎴 *VAULTY CARD ANALYZER*
━━━━━━━━━━━━━━━━━━━━━━━━━━━

Bienvenue sur le bot officiel de *Vaulty Protocol* ! 🇨🇭

Je suis votre assistant IA pour l'analyse de cartes à collectionner (Pokémon, Football, Basketball, etc.)

📸 *Envoyez-moi une photo* et j'analyserai:
✅ Identification complète de la carte
✅ Estimation de l'état (1-10)
✅ Prix de marché (RAW & gradé)
✅ Tendance et recommandation

━━━━━━━━━━━━━━━━━━━━━━━━━━━

🔐 *POURQUOI VAULTY PROTOCOL ?*

Nous sommes le premier service suisse d'authentification de cartes par blockchain:

• 🛡️ *Protection anti-contrefaçon* - Hologramme VOID + puce NFC
• ⛓️ *Certificat blockchain* - NFT sur Polygon infalsifiable
• 🔍 *Empreinte digitale unique* - Chaque carte a son identité
• 🇨🇭 *Qualité Suisse* - Inspection minutieuse

━━━━━━━━━━━━━━━━━━━━━━━━━━━

📷 *Envoyez une photo pour commencer !*

🎯 Commandes: /help • /services • /prix • /contact`

	MsgHelp = `📖 *AIDE - VAULTY CARD ANALYZER*
━━━━━━━━━━━━━━━━━━━━━━━━━━━

*📸 ANALYSER UNE CARTE*
1. Prenez une photo claire de votre carte
2. Envoyez-la dans ce chat
3. Attendez l'analyse IA (5-15 sec)

*💡 CONSEILS PHOTO*
• Bonne lumière, pas de reflets
• Carte entière visible
• Si gradée, montrez le label PSA/BGS

*📊 CE QUE VOUS OBTENEZ*
• Identification (joueur, set, année)
• Estimation de condition (1-10)
• Prix RAW et gradé
• Tendance du marché

━━━━━━━━━━━━━━━━━━━━━━━━━━━

*🎯 COMMANDES*
/start - Message de bienvenue
/help - Cette aide
/services - Nos services de certification
/prix - Tarifs Vaulty Protocol
/verifier - Vérifier une carte certifiée
/contact - Nous contacter

━━━━━━━━━━━━━━━━━━━━━━━━━━━

⚠️ _Les estimations sont basées sur les données de marché. Consultez eBay Sold pour les prix actuels._

🌐 *vaultyprotocol.tech*`

	MsgServices = `🔐 *NOS SERVICES DE CERTIFICATION*
━━━━━━━━━━━━━━━━━━━━━━━━━━━

*🥉 FORFAIT BRONZE* - dès 15 CHF
• Inspection visuelle complète
• Certificat numérique
• QR Code de vérification
→ Idéal pour les cartes < 50€

*🥈 FORFAIT ARGENT* - dès 35 CHF
• Tout Bronze +
• Hologramme VOID anti-ouverture
• Puce NFC cryptographique
• NFT sur blockchain Polygon
→ Recommandé pour cartes 50-200€

*🥇 FORFAIT OR* - dès 75 CHF
• Tout Argent +
• Boîtier de protection premium
• Mesures physiques précises
• Empreinte digitale complète
→ Pour vos cartes de valeur 200€+

━━━━━━━━━━━━━━━━━━━━━━━━━━━

✨ *AVANTAGES VAULTY*
• Vendez 25-50% plus cher
• Confiance acheteur immédiate
• Protection anti-contrefaçon
• Traçabilité blockchain
• Qualité Suisse 🇨🇭

━━━━━━━━━━━━━━━━━━━━━━━━━━━
📷 _Envoyez une photo pour une estimation gratuite !_`

	MsgPrices = `💰 *TARIFS VAULTY PROTOCOL*
━━━━━━━━━━━━━━━━━━━━━━━━━━━

*📦 CARTES GRADÉES (PSA, BGS, CGC)*

🥉 Bronze: *15-19 CHF*
🥈 Argent: *35-45 CHF*
🥇 Or: *75-95 CHF*

*🃏 CARTES RAW (non gradées)*

🥉 Bronze: *19-25 CHF*
🥈 Argent: *45-55 CHF*
🥇 Or: *95-115 CHF*

━━━━━━━━━━━━━━━━━━━━━━━━━━━

*💎 SERVICES ADDITIONNELS*

• Rapport de Collection: 19-49 CHF
• Évaluation Assurance: 29 CHF
• Alerte Prix Premium: 5-9 CHF/mois

━━━━━━━━━━━━━━━━━━━━━━━━━━━

🎁 *OFFRE SPÉCIALE*
-10% sur votre première certification !
Code: *TELEGRAM10*

━━━━━━━━━━━━━━━━━━━━━━━━━━━
📷 _Envoyez une photo pour savoir quel forfait vous convient !_`

	MsgVerify = `✅ *VÉRIFIER UNE CARTE VAULTY*
━━━━━━━━━━━━━━━━━━━━━━━━━━━

Vous avez acheté une carte certifiée Vaulty ?
Vérifiez son authenticité en 2 secondes !

*🔍 COMMENT VÉRIFIER ?*

1️⃣ *Par QR Code*
Scannez le QR sur le certificat

2️⃣ *Par ID Vaulty*
Entrez le code VLT-XXX-XXX-XXXXXX sur notre site

3️⃣ *Par NFC* (Forfait Argent/Or)
Approchez votre téléphone de la puce

━━━━━━━━━━━━━━━━━━━━━━━━━━━

*🛡️ CE QUE VOUS VOYEZ*
• Photo originale de la carte
• Empreinte digitale unique
• Historique complet
• Certificat blockchain
• Lien OpenSea du NFT

━━━━━━━━━━━━━━━━━━━━━━━━━━━
⚠️ _Si la vérification échoue, contactez-nous immédiatement !_`

	MsgContact = `📞 *CONTACTEZ VAULTY PROTOCOL*
━━━━━━━━━━━━━━━━━━━━━━━━━━━

*🌐 Site Web*
vaultyprotocol.tech

*📧 Email*
contact@vaultyprotocol.tech

*📱 Réseaux Sociaux*
• Twitter/X: @vaulty\_protocol
• Instagram: @vaulty\_protocol
• TikTok: @vaulty\_protocol

*💬 Discord*
Rejoignez notre communauté !

━━━━━━━━━━━━━━━━━━━━━━━━━━━

*📍 Localisation*
Suisse 🇨🇭

*⏰ Horaires*
Lun-Ven: 9h-18h (CET)
Réponse sous 24-48h

━━━━━━━━━━━━━━━━━━━━━━━━━━━
🔐 _Vaulty Protocol - Swiss Blockchain Authentication_`
)

// =============================================================================
// Post-analysis promotion
// =============================================================================

const MsgPromo = `━━━━━━━━━━━━━━━━━━━━━━━━━━━

💎 *PROTÉGEZ CETTE CARTE !*

Avec la certification Vaulty Protocol:
✅ Vendez *25-50% plus cher*
✅ Authentification *infalsifiable*
✅ Certificat *blockchain*
✅ Protection *NFC + Hologramme*

🎁 *-10% avec le code TELEGRAM10*

━━━━━━━━━━━━━━━━━━━━━━━━━━━`

// =============================================================================
// Text message replies, keyed on what the user seems to be asking
// =============================================================================

const (
	MsgGreetingReply = `👋 *Bonjour !* Bienvenue sur Vaulty Card Analyzer !

📷 Envoyez-moi une photo de votre carte pour:
• Identification complète
• Estimation de prix
• Recommandation personnalisée

🌐 Découvrez nos services: vaultyprotocol.tech`

	MsgThanksReply = `🙏 *Avec plaisir !*

N'hésitez pas à:
• 📷 Analyser d'autres cartes
• 🔐 Découvrir nos certifications
• 🛒 Visiter notre marketplace

🌐 *vaultyprotocol.tech*`

	MsgPriceReply = `💰 *Nos tarifs commencent à 15 CHF !*

🥉 Bronze: dès 15 CHF
🥈 Argent: dès 35 CHF
🥇 Or: dès 75 CHF

🎁 *-10% avec TELEGRAM10*

Tapez /prix pour plus de détails !`

	MsgFakeReply = `🛡️ *Protégez-vous des contrefaçons !*

~30% des cartes gradées en ligne sont fausses !

Vaulty Protocol vous protège avec:
• Empreinte digitale unique
• Puce NFC cryptographique
• Certificat blockchain
• Hologramme VOID

🌐 *vaultyprotocol.tech/pass-services/*`

	MsgHelpReply = `📖 *Besoin d'aide ?*

📷 *Pour analyser:* Envoyez une photo
🎯 *Commandes:* /help, /services, /prix

🌐 Plus d'infos: vaultyprotocol.tech`

	MsgFallbackReply = `🤔 Je ne comprends que les photos de cartes !

📷 *Envoyez une image* pour l'analyser.

🎯 *Commandes utiles:*
• /help - Aide
• /services - Nos services
• /prix - Tarifs

🌐 *vaultyprotocol.tech*`
)

// =============================================================================
// Admin messages
// =============================================================================

const (
	MsgStatsFmt = `📊 *Statistiques*

*Dernières 24h*
• Analyses: %d
• Tokens: %d entrée / %d sortie
• Coût estimé: $%.4f

*Depuis le début*
• Analyses: %d
• Tokens: %d entrée / %d sortie
• Coût estimé: $%.4f

*Cache*
• Analyses en cache: %d`

	MsgStatsUnavailable = "Statistiques indisponibles: %s"
)
